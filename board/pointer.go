package board

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dropzone/vmath"
)

// MouseAction is the decoded gesture step of a mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionDrag
	MouseActionRelease
	MouseActionMove
)

// String returns human-readable action name
func (a MouseAction) String() string {
	switch a {
	case MouseActionPress:
		return "Press"
	case MouseActionDrag:
		return "Drag"
	case MouseActionRelease:
		return "Release"
	case MouseActionMove:
		return "Move"
	default:
		return "None"
	}
}

// pointer turns tcell's button-mask reports into press/drag/release
// tcell sends the held mask on every motion and an empty mask on release
type pointer struct {
	down bool
}

func (p *pointer) decode(ev *tcell.EventMouse) (MouseAction, vmath.Point) {
	x, y := ev.Position()
	pt := vmath.Point{X: float64(x), Y: float64(y)}
	held := ev.Buttons()&tcell.Button1 != 0

	switch {
	case held && !p.down:
		p.down = true
		return MouseActionPress, pt
	case held:
		return MouseActionDrag, pt
	case p.down:
		p.down = false
		return MouseActionRelease, pt
	default:
		return MouseActionMove, pt
	}
}

// reset forgets a held button, e.g. after focus loss
func (p *pointer) reset() {
	p.down = false
}
