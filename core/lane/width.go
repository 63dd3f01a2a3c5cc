//go:build !lanes16

package lane

// Width is the number of lanes in a register. Build with -tags lanes16 for
// the 16-lane layout.
const Width = 32
