package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/dropzone/content"
	"github.com/lixenwraith/dropzone/report"
)

var errValidationFailed = errors.New("deck validation failed")

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [deck]",
		Short: "Check a deck file or directory and report every problem",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := a.cfg.Deck
			if len(args) == 1 {
				source = args[0]
			}
			deck, err := content.Read(source, a.log)
			if err != nil {
				return err
			}
			out, ok := report.Validation(deck)
			fmt.Fprint(cmd.OutOrStdout(), out)
			if !ok {
				return errValidationFailed
			}
			return nil
		},
	}
}
