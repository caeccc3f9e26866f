// Package pdep provides the parallel-bit-deposit primitive used to
// scatter update bits into the set positions of a mask word.
//
// On amd64 with BMI2 the hardware PDEP instruction is used; elsewhere
// a software loop with the same semantics runs. The strategy is
// chosen once at package init from detected CPU capabilities and can
// be forced with the BITVEC_PDEP environment variable ("generic" or
// "bmi2").
package pdep

import (
	"os"
	"strings"
)

// Strategy identifies a deposit implementation.
type Strategy uint8

const (
	// Generic is the portable software loop.
	Generic Strategy = iota
	// BMI2 is the hardware PDEP instruction (amd64 only).
	BMI2
)

// String returns the string representation of a Strategy.
func (s Strategy) String() string {
	switch s {
	case Generic:
		return "generic"
	case BMI2:
		return "bmi2"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a string into a Strategy value.
func ParseStrategy(s string) (Strategy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "bmi2":
		return BMI2, true
	default:
		return Generic, false
	}
}

// Package-level state, initialized once at package init. No mutex
// needed: init runs before any other code in the package is used.
var (
	active    Strategy
	depositFn = depositGeneric
)

// Active returns the strategy selected at init.
func Active() Strategy {
	return active
}

// Deposit scatters the low bits of src into the positions of the set
// bits of mask, from least to most significant: the k-th lowest bit
// of src lands on the k-th lowest set bit of mask. All other result
// bits are zero.
func Deposit(src, mask uint64) uint64 {
	return depositFn(src, mask)
}

// selectStrategy is called from the platform-specific init with the
// detected capability and the hardware implementation, if any.
func selectStrategy(hasBMI2 bool, hw func(src, mask uint64) uint64) {
	want := Generic
	if hasBMI2 {
		want = BMI2
	}
	if override := os.Getenv("BITVEC_PDEP"); override != "" {
		if s, ok := ParseStrategy(override); ok {
			// An unavailable override falls back to auto-detection.
			if s == Generic || hasBMI2 {
				want = s
			}
		}
	}
	if want == BMI2 && hw != nil {
		active, depositFn = BMI2, hw
		return
	}
	active, depositFn = Generic, depositGeneric
}

// depositGeneric emulates PDEP in software. It scales with the number
// of set bits in mask rather than being constant time, so the
// hardware instruction is preferred where available.
func depositGeneric(src, mask uint64) uint64 {
	if src == 0 || mask == ^uint64(0) {
		return src
	}
	var result uint64
	for bb := uint64(1); mask != 0; bb += bb {
		if src&bb != 0 {
			result |= mask & -mask
		}
		mask &= mask - 1
	}
	return result
}
