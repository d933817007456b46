package fsm

// key indexes a transition by source state and triggering event
type key[S comparable, E comparable] struct {
	from S
	on   E
}

// Transition defines a link between states and the effects it emits
// Effects are data; the Machine hands them to its runner after the state
// change is committed
type Transition[S comparable, X any] struct {
	To      S
	Effects []X
}

// Node represents a state in the table
type Node[S comparable] struct {
	ID       S
	Name     string
	Terminal bool // Terminal nodes ignore every event
}
