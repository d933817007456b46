package board

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dropzone/exercise"
	"github.com/lixenwraith/dropzone/layout"
	"github.com/lixenwraith/dropzone/placement"
	"github.com/lixenwraith/dropzone/vmath"
)

const helpText = "drag items with the mouse | n next | p prev | r restart | q quit"

var (
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleZone   = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)
	styleItem   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleLifted = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)
	stylePlaced = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHome   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkGreen)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen).Bold(true)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func (b *Board) draw(now time.Time) {
	b.screen.Clear()

	if b.session == nil {
		b.text(1, 0, "dropzone", styleTitle)
		b.text(1, 2, "This exercise cannot be shown:", styleError)
		b.text(1, 3, b.fallback, styleDim)
		b.text(1, b.height-1, helpText, styleDim)
		b.screen.Show()
		return
	}

	b.drawStatus()
	if s, ok := b.session.(*placement.SortSession); ok {
		b.drawZones(s)
	}

	// Lifted piece last so it renders on top
	var lifted *piece
	for _, id := range b.order {
		p := b.pieces[id]
		v := p.tracker.Visual(now)
		if v.Raised {
			lifted = p
			continue
		}
		b.drawPiece(p, v.Offset, false)
	}
	if lifted != nil {
		b.drawPiece(lifted, lifted.tracker.Visual(now).Offset, true)
	}

	if b.banner != "" {
		msg := "  " + b.banner + "  "
		b.text((b.width-len(msg))/2, b.height/2, msg, styleBanner)
	}
	b.text(1, b.height-1, helpText, styleDim)
	b.screen.Show()
}

func (b *Board) drawStatus() {
	ex := b.session.Identity()
	snap := b.session.Snapshot()
	title := ""
	if cur, ok := b.catalog.Get(ex); ok {
		title = cur.Title
	}
	b.text(1, 0, fmt.Sprintf("dropzone  %s %s  %s", ex, b.session.Variant(), title), styleTitle)

	status := fmt.Sprintf("placed %d/%d", snap.Placed, snap.Items)
	if snap.Variant == exercise.VariantSort {
		status += fmt.Sprintf("  wrong %d", snap.WrongAttempts)
	} else {
		status += fmt.Sprintf("  swaps %d", snap.Swaps)
	}
	b.text(b.width-len(status)-1, 0, status, styleDim)
}

func (b *Board) drawZones(s *placement.SortSession) {
	ex := s.Exercise()
	for _, c := range ex.Categories {
		r, ok := b.arrangement.Target(layout.TargetID(c.ID))
		if !ok {
			continue
		}
		b.frame(r, styleZone)
		label := fmt.Sprintf(" %s %d/%d ", c.Label, len(s.PlacedIn(layout.TargetID(c.ID))), ex.ExpectedCount(c.ID))
		b.text(int(r.X)+(int(r.Width)-len(label))/2, int(r.Y), label, styleZone)
	}
}

func (b *Board) drawPiece(p *piece, off vmath.Point, lifted bool) {
	x, y := int(math.Round(off.X)), int(math.Round(off.Y))

	if p.placed {
		b.text(x, y, p.word, stylePlaced)
		return
	}

	style := styleItem
	switch {
	case lifted:
		style = styleLifted
	case b.home(p):
		style = styleHome
	}

	w, h := int(b.cfg.ItemWidth), int(b.cfg.ItemHeight)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			b.screen.SetContent(x+col, y+row, ' ', nil, style)
		}
	}
	word := p.word
	if len(word) > w {
		word = word[:w]
	}
	b.text(x+(w-len(word))/2, y+h/2, word, style)
}

// home reports whether a puzzle piece sits in its own slot
func (b *Board) home(p *piece) bool {
	s, ok := b.session.(*placement.PuzzleSession)
	if !ok {
		return false
	}
	slot, ok := s.SlotOf(p.id)
	it, _ := s.Item(p.id)
	return ok && slot == it.Slot
}

func (b *Board) frame(r vmath.Rect, style tcell.Style) {
	x0, y0 := int(r.X), int(r.Y)
	x1, y1 := x0+int(r.Width)-1, y0+int(r.Height)-1
	for x := x0 + 1; x < x1; x++ {
		b.screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		b.screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		b.screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		b.screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	b.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	b.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	b.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	b.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
}

func (b *Board) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		b.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
