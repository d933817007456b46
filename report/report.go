// Package report renders styled plain-text summaries for the command line.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/dropzone/exercise"
	"github.com/lixenwraith/dropzone/placement"
	"github.com/lixenwraith/dropzone/simulate"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Validation renders a per-exercise check of deck; ok is false on any problem
func Validation(deck *exercise.Deck) (out string, ok bool) {
	var b strings.Builder
	ok = true

	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render("deck"), deck.Name)

	seen := make(map[exercise.Identity]bool, len(deck.Exercises))
	for i := range deck.Exercises {
		ex := &deck.Exercises[i]
		id := ex.Identity()
		label := fmt.Sprintf("%-5s %-6s %s", id, ex.Variant, ex.Title)

		var problems []string
		if seen[id] {
			problems = append(problems, "duplicate identity")
		}
		seen[id] = true

		if err := ex.Validate(); err != nil {
			var ve *exercise.ValidationError
			if errors.As(err, &ve) {
				problems = append(problems, ve.Problems...)
			} else {
				problems = append(problems, err.Error())
			}
		}

		if len(problems) == 0 {
			fmt.Fprintf(&b, "  %s %s\n", okStyle.Render("ok  "), label)
			continue
		}
		ok = false
		fmt.Fprintf(&b, "  %s %s\n", failStyle.Render("FAIL"), label)
		for _, p := range problems {
			fmt.Fprintf(&b, "       %s\n", dimStyle.Render("- "+p))
		}
	}

	if len(deck.Exercises) == 0 {
		ok = false
		fmt.Fprintf(&b, "  %s\n", failStyle.Render("no exercises"))
	}
	return b.String(), ok
}

// Simulation renders each step of a replay and the completion result
func Simulation(res *simulate.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s %s\n",
		titleStyle.Render("exercise"), res.Identity, res.Variant, dimStyle.Render(res.Title))

	for i, st := range res.Steps {
		fmt.Fprintf(&b, "%3d  %-12s -> %-12s %s\n",
			i+1, st.Drop.Item, dropLabel(st), outcomeLabel(st.Outcome))
	}

	b.WriteString(boxStyle.Render(summary(res)))
	b.WriteString("\n")
	return b.String()
}

func dropLabel(st simulate.Step) string {
	if st.Drop.Target != "" {
		return st.Drop.Target
	}
	return fmt.Sprintf("(%.1f,%.1f)", st.Point.X, st.Point.Y)
}

func outcomeLabel(o placement.Outcome) string {
	switch o.Kind {
	case placement.Accepted:
		return okStyle.Render("accepted")
	case placement.Swapped:
		return okStyle.Render(fmt.Sprintf("swapped %s<->%s", o.From, o.Target))
	}
	label := "rejected " + o.Reason.String()
	if o.Counted {
		return failStyle.Render(label)
	}
	return warnStyle.Render(label)
}

func summary(res *simulate.Result) string {
	f := res.Final
	lines := []string{
		fmt.Sprintf("placed %d/%d", f.Placed, f.Items),
		fmt.Sprintf("wrong  %d", f.WrongAttempts),
	}
	if res.Variant == exercise.VariantPuzzle {
		lines = append(lines, fmt.Sprintf("swaps  %d", f.Swaps))
	}
	switch {
	case !res.Completed:
		lines = append(lines, warnStyle.Render("incomplete"))
	case res.Success:
		lines = append(lines, okStyle.Render("completed"))
	default:
		lines = append(lines, failStyle.Render("given up"))
	}
	return strings.Join(lines, "\n")
}
