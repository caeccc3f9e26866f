//go:build amd64

package pdep

import "golang.org/x/sys/cpu"

func init() {
	selectStrategy(cpu.X86.HasBMI2, depositBMI2)
}

// depositBMI2 is implemented in pdep_amd64.s using the PDEP
// instruction. Only callable when BMI2 is available.
//
//go:noescape
func depositBMI2(src, mask uint64) uint64
