package placement

import (
	"github.com/lixenwraith/dropzone/engine/fsm"
)

// Phase of an exercise instance
// Initializing -> Active -> Completed; Completed is terminal
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseActive
	PhaseCompleted
)

func (p Phase) String() string {
	return lifecycleTable.Name(p)
}

type signal int

const (
	sigReady  signal = iota // Fresh shuffle committed
	sigSolved               // Placement reached the solved state
	sigGiveUp               // Wrong-attempt ceiling reached
)

type effect int

const (
	fxCompleteSuccess effect = iota
	fxCompleteGivenUp
)

// lifecycleTable has no solved/give-up transitions out of Initializing, which
// suppresses completion checks while the initial shuffle is written
var lifecycleTable = func() *fsm.Table[Phase, signal, effect] {
	t := fsm.NewTable[Phase, signal, effect]()
	t.AddState(PhaseInitializing, "Initializing")
	t.AddState(PhaseActive, "Active")
	t.AddTerminal(PhaseCompleted, "Completed")
	t.MustAddTransition(PhaseInitializing, sigReady, PhaseActive)
	t.MustAddTransition(PhaseActive, sigSolved, PhaseCompleted, fxCompleteSuccess)
	t.MustAddTransition(PhaseActive, sigGiveUp, PhaseCompleted, fxCompleteGivenUp)
	return t
}()

// latch is the one-shot completion guard of an instance
// The Completed state is committed before the callback runs, so a callback
// that re-enters the session cannot fire completion again
type latch struct {
	machine *fsm.Machine[Phase, signal, effect]
	fired   int
	success bool
	notify  func(success bool)
}

func newLatch(notify func(success bool)) *latch {
	l := &latch{notify: notify}
	l.machine = fsm.NewMachine(lifecycleTable, PhaseInitializing, l.run)
	return l
}

func (l *latch) run(fx effect) {
	l.fired++
	l.success = fx == fxCompleteSuccess
	if l.notify != nil {
		l.notify(l.success)
	}
}

func (l *latch) ready() bool { return l.machine.Fire(sigReady) }
func (l *latch) solved() bool { return l.machine.Fire(sigSolved) }
func (l *latch) giveUp() bool { return l.machine.Fire(sigGiveUp) }
func (l *latch) phase() Phase { return l.machine.State() }
func (l *latch) done() bool { return l.machine.Terminal() }
func (l *latch) result() bool { return l.success }
func (l *latch) signals() int { return l.fired }
