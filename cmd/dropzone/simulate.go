package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/dropzone/content"
	"github.com/lixenwraith/dropzone/exercise"
	"github.com/lixenwraith/dropzone/report"
	"github.com/lixenwraith/dropzone/simulate"
)

func (a *app) simulateCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "simulate <script>",
		Short: "Replay a drop script against an exercise without a terminal",
		Long: `Replays a YAML list of drops against a fresh instance of one exercise,
laid out on a synthetic 80x24 screen, and prints each outcome.

Each drop names an item and either a target (released at its center)
or an explicit x/y release point:

  - { item: cat, target: animals }
  - { item: apple, x: 12, y: 5 }

Puzzle slots are named slot-0, slot-1, ...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := exercise.ParseIdentity(target)
			if err != nil {
				return err
			}
			deck, err := content.Open(a.cfg.Deck, a.log)
			if err != nil {
				return err
			}
			ex, ok := deck.Find(id)
			if !ok {
				return fmt.Errorf("%w: %s", exercise.ErrNotFound, id)
			}
			script, err := simulate.LoadScript(args[0])
			if err != nil {
				return err
			}

			res, err := simulate.Run(ex, a.cfg.Placement(), script, simulate.Options{Log: a.log})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Simulation(res))
			return nil
		},
	}
	cmd.Flags().StringVarP(&target, "exercise", "e", "1.1", "exercise identity as stage.order")
	return cmd
}
