package placement

import "github.com/lixenwraith/dropzone/layout"

// OutcomeKind is the public result of one drop
type OutcomeKind int

const (
	Rejected OutcomeKind = iota
	Accepted
	Swapped
)

func (k OutcomeKind) String() string {
	switch k {
	case Accepted:
		return "accepted"
	case Swapped:
		return "swapped"
	default:
		return "rejected"
	}
}

// Reason qualifies a rejection
type Reason int

const (
	ReasonNone        Reason = iota
	ReasonWrongTarget        // Dropped on a target that is not the item's own
	ReasonNoTarget           // No candidate target under the release point
	ReasonDisabled           // Item already placed; gesture resolves to origin
	ReasonSameSlot           // Puzzle piece dropped back on its own slot
	ReasonCompleted          // Instance already completed; board locked
	ReasonUnknownItem        // Item id not part of this instance
)

var reasonNames = [...]string{
	ReasonNone:        "",
	ReasonWrongTarget: "wrong-target",
	ReasonNoTarget:    "no-target",
	ReasonDisabled:    "disabled",
	ReasonSameSlot:    "same-slot",
	ReasonCompleted:   "completed",
	ReasonUnknownItem: "unknown-item",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Outcome of OnDragEnd
//   - Accepted: Target is the item's correct target, now committed
//   - Rejected: item returns to its pre-drag position, Reason says why
//   - Swapped: dragged piece moved From -> To, Displaced moved To -> From
type Outcome struct {
	Kind      OutcomeKind
	Item      string
	Target    layout.TargetID
	From      layout.TargetID
	Displaced string
	Reason    Reason
	Counted   bool // Rejection incremented the wrong-attempt counter
}

func accepted(item string, target layout.TargetID) Outcome {
	return Outcome{Kind: Accepted, Item: item, Target: target}
}

func rejected(item string, reason Reason) Outcome {
	return Outcome{Kind: Rejected, Item: item, Reason: reason}
}

func swapped(item, displaced string, from, to layout.TargetID) Outcome {
	return Outcome{Kind: Swapped, Item: item, Target: to, From: from, Displaced: displaced}
}
