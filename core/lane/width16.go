//go:build lanes16

package lane

// Width is the number of lanes in a register.
const Width = 16
