package engine

import "sync"

// Trace accumulates the ordered sequence of primitive operation TYPES an
// engine executes. Operand identities and values are deliberately absent:
// two computations are branchless-equivalent exactly when their traces are
// equal, whatever the underlying amounts were.
//
// Traces exist for property tests and diagnostics; production paths run with
// no trace attached.
type Trace struct {
	mu  sync.Mutex
	ops []Primitive
}

// Record appends one operation type to the trace.
func (t *Trace) Record(p Primitive) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ops = append(t.ops, p)
}

// Ops returns a copy of the recorded sequence.
func (t *Trace) Ops() []Primitive {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Primitive, len(t.ops))
	copy(out, t.ops)
	return out
}

// Len returns the number of recorded operations.
func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ops)
}

// Reset clears the recorded sequence so the trace can observe a fresh
// computation.
func (t *Trace) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ops = t.ops[:0]
}
