//go:build !amd64

package pdep

func init() {
	selectStrategy(false, nil)
}
