package mesh

import "errors"

// Structural errors reported by Face construction and removal. Callers
// test for them with errors.Is; the returned errors carry more detail.
var (
	ErrTooFewEdges = errors.New("face needs at least 3 edges")
	ErrBrokenChain = errors.New("edge head does not match previous edge tail")
	ErrOpenCycle   = errors.New("last edge tail does not close the face")
)
