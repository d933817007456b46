package fsm

import "fmt"

// Table is an immutable-after-build transition graph
// S is the state type, E the event type, X the effect type
type Table[S comparable, E comparable, X any] struct {
	nodes       map[S]*Node[S]
	transitions map[key[S, E]]Transition[S, X]
}

// NewTable creates an empty transition table
func NewTable[S comparable, E comparable, X any]() *Table[S, E, X] {
	return &Table[S, E, X]{
		nodes:       make(map[S]*Node[S]),
		transitions: make(map[key[S, E]]Transition[S, X]),
	}
}

// AddState adds a node to the table
func (t *Table[S, E, X]) AddState(id S, name string) *Node[S] {
	node := &Node[S]{ID: id, Name: name}
	t.nodes[id] = node
	return node
}

// AddTerminal adds a node that accepts no further events
func (t *Table[S, E, X]) AddTerminal(id S, name string) *Node[S] {
	node := t.AddState(id, name)
	node.Terminal = true
	return node
}

// AddTransition links from -> to on event, carrying effects
// Returns error for unknown states, transitions out of a terminal state, or a
// duplicate (from, on) pair
func (t *Table[S, E, X]) AddTransition(from S, on E, to S, effects ...X) error {
	src, ok := t.nodes[from]
	if !ok {
		return fmt.Errorf("fsm: unknown source state %v", from)
	}
	if _, ok := t.nodes[to]; !ok {
		return fmt.Errorf("fsm: unknown target state %v", to)
	}
	if src.Terminal {
		return fmt.Errorf("fsm: state %q is terminal", src.Name)
	}
	k := key[S, E]{from: from, on: on}
	if _, dup := t.transitions[k]; dup {
		return fmt.Errorf("fsm: duplicate transition from %q on %v", src.Name, on)
	}
	t.transitions[k] = Transition[S, X]{To: to, Effects: effects}
	return nil
}

// MustAddTransition panics on a malformed table; for package-level tables
func (t *Table[S, E, X]) MustAddTransition(from S, on E, to S, effects ...X) {
	if err := t.AddTransition(from, on, to, effects...); err != nil {
		panic(err)
	}
}

// Step is the pure transition function: (state, event) -> (next, effects)
// ok is false when the event is not accepted in state; next equals state then
func (t *Table[S, E, X]) Step(state S, event E) (next S, effects []X, ok bool) {
	if node, exists := t.nodes[state]; !exists || node.Terminal {
		return state, nil, false
	}
	tr, exists := t.transitions[key[S, E]{from: state, on: event}]
	if !exists {
		return state, nil, false
	}
	return tr.To, tr.Effects, true
}

// Name returns the registered state name
func (t *Table[S, E, X]) Name(id S) string {
	if node, ok := t.nodes[id]; ok {
		return node.Name
	}
	return ""
}

// IsTerminal reports whether id is a terminal state
func (t *Table[S, E, X]) IsTerminal(id S) bool {
	node, ok := t.nodes[id]
	return ok && node.Terminal
}
