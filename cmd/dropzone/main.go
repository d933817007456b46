package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/dropzone/config"
	"github.com/lixenwraith/dropzone/logging"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

// app carries flags and shared state for one command tree
type app struct {
	configPath string
	deck       string
	seed       uint64
	verbose    bool

	cfg     *config.Config
	log     *zap.Logger
	cleanup func()
}

// newRootCmd builds the command tree; play is the default action
func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop(), cleanup: func() {}}

	root := &cobra.Command{
		Use:   "dropzone",
		Short: "Drag-and-drop sorting and picture puzzles in the terminal",
		Long: `dropzone runs classification and picture-puzzle exercises.

Sort exercises: drag each item onto its category. Wrong drops bounce back;
after too many the exercise ends gently so the next one can start.
Puzzle exercises: drag pieces onto each other to swap them until the
picture is whole.

Run without arguments to play the built-in deck.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.cleanup()
		},
		RunE: a.runPlay,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (YAML)")
	pf.StringVarP(&a.deck, "deck", "d", "", "deck file or directory (default: built-in deck)")
	pf.Uint64Var(&a.seed, "seed", 0, "shuffle seed, 0 = time-based")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.playCmd(),
		a.validateCmd(),
		a.simulateCmd(),
		versionCmd(),
	)
	return root
}

// setup loads config and builds the logger for the invoked command
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.deck != "" {
		cfg.Deck = a.deck
	}
	if a.seed != 0 {
		cfg.Seed = a.seed
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg

	mode := logging.ModeConsole
	if cmd.Name() == "play" || cmd == cmd.Root() {
		mode = logging.ModeInteractive
	}
	log, cleanup, err := logging.New(cfg.Log, mode)
	if err != nil {
		return err
	}
	a.log, a.cleanup = log, cleanup
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dropzone %s\n", Version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
