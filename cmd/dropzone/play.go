package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/dropzone/audio"
	"github.com/lixenwraith/dropzone/board"
	"github.com/lixenwraith/dropzone/content"
	"github.com/lixenwraith/dropzone/event"
	"github.com/lixenwraith/dropzone/exercise"
	"github.com/lixenwraith/dropzone/metrics"
	"github.com/lixenwraith/dropzone/watch"
)

func (a *app) playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the deck in the terminal (default)",
		Long: `Opens the interactive board. Drag items with the mouse.
Keys: n next, p previous, r restart, Esc cancels a drag, q quits.

When the deck is a file it is watched; saving it restarts the current
exercise with the new content.`,
		Args: cobra.NoArgs,
		RunE: a.runPlay,
	}
}

func (a *app) runPlay(cmd *cobra.Command, args []string) error {
	deck, err := content.Open(a.cfg.Deck, a.log)
	if err != nil {
		return err
	}
	catalog := content.NewCatalog(deck)
	first, ok := catalog.First()
	if !ok {
		return errors.New("deck has no exercises")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	crash := board.CrashHandler(screen)
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	recorder := metrics.NewRecorder()
	sinks := event.Fanout{recorder}

	if a.cfg.Audio.Enabled {
		player := audio.NewPlayer(a.cfg.Audio.Volume, a.log)
		if err := player.Initialize(); err != nil {
			a.log.Warn("audio unavailable, continuing without sound", zap.Error(err))
		} else {
			defer player.Cleanup()
			sinks = append(sinks, player)
		}
	}

	b := board.New(screen, catalog, board.Options{
		Engine:  a.cfg.Placement(),
		Gesture: a.cfg.Gesture(),
		Sink:    sinks,
		Log:     a.log,
	})
	b.Mount(first)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return b.Run(ctx, crash)
	})

	if a.cfg.Metrics.Addr != "" {
		g.Go(func() error {
			return recorder.Serve(ctx, a.cfg.Metrics.Addr, a.log)
		})
	}

	if info, err := os.Stat(a.cfg.Deck); err == nil && !info.IsDir() {
		w, err := watch.New(a.cfg.Deck, func(d *exercise.Deck) {
			if err := content.Playable(d, a.log); err != nil {
				a.log.Warn("reloaded deck unusable, keeping current", zap.Error(err))
				return
			}
			b.Reload(d)
		}, a.log)
		if err != nil {
			a.log.Warn("deck watch unavailable", zap.Error(err))
		} else {
			g.Go(func() error { return w.Run(ctx) })
		}
	}

	return g.Wait()
}
