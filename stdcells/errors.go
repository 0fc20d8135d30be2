package stdcells

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNonConvergence is the sentinel wrapped by every NonConvergenceError.
// Callers that only care whether settling converged can test for it with
// errors.Is.
var ErrNonConvergence = errors.New("stdcells: combinational settling did not converge")

// ErrPortOutOfRange is the sentinel wrapped when a cell's GetPort is
// called with a local index it does not own. This is always a
// programming error on the caller's part.
var ErrPortOutOfRange = errors.New("stdcells: local port index out of range")

// NonConvergenceError reports that the settling loop in Sim.Cycle hit
// its iteration cap before every dirty set emptied. Dirty names at least
// one node that was still dirty on the last iteration, per spec.
type NonConvergenceError struct {
	Iterations int
	Dirty      []NodeID
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf(
		"stdcells: settling did not converge after %d iteration(s); %d node(s) still dirty (first: %+v)",
		e.Iterations, len(e.Dirty), e.firstDirty(),
	)
}

func (e *NonConvergenceError) firstDirty() NodeID {
	if len(e.Dirty) == 0 {
		return NodeID{}
	}
	return e.Dirty[0]
}

// Unwrap lets errors.Is(err, ErrNonConvergence) succeed for any
// NonConvergenceError.
func (e *NonConvergenceError) Unwrap() error { return ErrNonConvergence }

func panicPortOutOfRange(cell string, port int) {
	panic(errors.Wrapf(ErrPortOutOfRange, "%s: port %d", cell, port))
}
