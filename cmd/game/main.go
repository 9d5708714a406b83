package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/audio/playback"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/loop"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The terminal belongs to the game, so logs go to a file if anywhere
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("INVADERS_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "game")

	registry := asset.NewBuiltinRegistry()
	if err := registry.Validate(asset.Names...); err != nil {
		return fmt.Errorf("load resources: %w", err)
	}

	sounds := &asset.Sounds{Registry: registry, Logger: logger}
	if !config.GetEnvBool("INVADERS_MUTE", false) {
		player := playback.NewPlayer()
		if err := player.Init(); err != nil {
			logger.Warn("audio unavailable, playing silently", "err", err)
		} else {
			defer player.Close()
			sounds.Player = player
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, reader, os.Stdout, loop.Options{
		Images: registry,
		Sounds: sounds,
		Logger: logger,
		FPS:    config.GetEnvInt("INVADERS_FPS", loop.DefaultFPS),
	})
}
