package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/keepalive/game"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	logLevel := flag.String("log-level", "", "Log level; overrides log.level from the config.")
	flag.Parse()

	if err := run(*configPath, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logLevel string) error {
	cfg, err := game.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, err := game.NewLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	ebiten.SetWindowSize(int(cfg.Arena.Width), int(cfg.Arena.Height))
	ebiten.SetWindowTitle("Keep It Alive")

	g := &Game{
		world: game.NewWorld(cfg, game.WithLogger(log)),
		log:   log,
	}
	if err := ebiten.RunGame(g); err != nil {
		log.Error("game exited", zap.Error(err))
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
