// Package pipeline aligns candidate read pairs on a bounded pool of workers,
// drops duplicate candidates, and hands each alignment to a visit callback.
//
// The only contract to implement is Aligner. The real one wraps an
// xdrop engine; tests use fakes.
package pipeline
