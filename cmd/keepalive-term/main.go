package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/keepalive/game"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	logLevel := flag.String("log-level", "", "Log level; overrides log.level from the config.")
	logFile := flag.String("log-file", "keepalive-term.log", "File the log is written to; the terminal is taken by the game.")
	flag.Parse()

	if err := run(*configPath, *logLevel, *logFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logLevel, logFile string) error {
	cfg, err := game.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, err := game.NewLogger(cfg.Log.Level, logFile)
	if err != nil {
		return err
	}
	defer log.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := newTerminal(screen, game.NewWorld(cfg, game.WithLogger(log)), log)
	events := make(chan tcell.Event, 100)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// PollEvent returns nil once the screen is finalized.
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		defer screen.Fini()
		return t.run(ctx, events)
	})

	err = g.Wait()
	log.Info("terminal closed", zap.Int("score", t.world.Score()))
	return err
}
