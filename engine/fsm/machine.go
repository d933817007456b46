package fsm

// Runner executes one effect produced by a transition
type Runner[X any] func(effect X)

// Machine is the runtime around a Table: current state plus effect runner
// Single-threaded; owned by the event thread
type Machine[S comparable, E comparable, X any] struct {
	table   *Table[S, E, X]
	initial S
	current S
	run     Runner[X]
}

// NewMachine creates a machine positioned at initial
// run may be nil, in which case effects are dropped
func NewMachine[S comparable, E comparable, X any](table *Table[S, E, X], initial S, run Runner[X]) *Machine[S, E, X] {
	return &Machine[S, E, X]{
		table:   table,
		initial: initial,
		current: initial,
		run:     run,
	}
}

// Fire routes an event through the table
// The new state is committed before any effect runs, so an effect that fires
// back into the machine observes the post-transition state
// Returns true if a transition occurred
func (m *Machine[S, E, X]) Fire(event E) bool {
	next, effects, ok := m.table.Step(m.current, event)
	if !ok {
		return false
	}
	m.current = next
	if m.run != nil {
		for _, fx := range effects {
			m.run(fx)
		}
	}
	return true
}

// State returns the current state
func (m *Machine[S, E, X]) State() S {
	return m.current
}

// StateName returns the registered name of the current state
func (m *Machine[S, E, X]) StateName() string {
	return m.table.Name(m.current)
}

// Terminal reports whether the machine reached a terminal state
func (m *Machine[S, E, X]) Terminal() bool {
	return m.table.IsTerminal(m.current)
}

// Reset returns the machine to its initial state without running effects
func (m *Machine[S, E, X]) Reset() {
	m.current = m.initial
}
