package event

// EventType represents the type of feedback event
type EventType int

const (
	EventNone EventType = iota

	// === Placement ===

	// EventDragStart item lifted
	// Trigger: gesture begin | Consumer: renderer (scale-up, z-raise)
	EventDragStart

	// EventAccepted item placed at its correct target
	// Trigger: rule engine | Consumer: renderer (fade from pool), metrics
	EventAccepted

	// EventRejected drop refused, item returns to origin
	// Trigger: rule engine | Consumer: renderer (shake + snap-back), metrics
	EventRejected

	// EventSwapped puzzle pieces exchanged slots
	// Trigger: rule engine | Consumer: renderer, audio, metrics
	EventSwapped

	// EventSnapBack item settles at its pre-drag position without penalty
	// Trigger: rule engine (no target, disabled item) | Consumer: renderer
	EventSnapBack

	// === Feedback ===

	// EventHapticSuccess fire-and-forget success feedback
	// Consumer: audio
	EventHapticSuccess

	// EventHapticError fire-and-forget error feedback
	// Consumer: audio
	EventHapticError

	// === Lifecycle ===

	// EventComplete exercise instance finished; Success false when given up
	// Trigger: completion latch, at most once per instance
	// Consumer: audio (fanfare), metrics, host
	EventComplete

	// EventInstanceStart fresh exercise instance begun
	// Trigger: Begin*, identity change | Consumer: metrics, host
	EventInstanceStart
)

var typeNames = map[EventType]string{
	EventNone:          "None",
	EventDragStart:     "DragStart",
	EventAccepted:      "Accepted",
	EventRejected:      "Rejected",
	EventSwapped:       "Swapped",
	EventSnapBack:      "SnapBack",
	EventHapticSuccess: "HapticSuccess",
	EventHapticError:   "HapticError",
	EventComplete:      "Complete",
	EventInstanceStart: "InstanceStart",
}

// String returns the event name
func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is a single feedback record pushed by the core
// Fields not relevant to the type are left zero
type Event struct {
	Type     EventType
	Instance string // Exercise instance id
	Item     string
	Target   string
	From     string // Previous slot for swaps
	Success  bool   // EventComplete only
	Seq      int64  // Monotonic per instance
}
