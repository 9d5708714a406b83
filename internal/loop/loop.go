// Package loop provides the game engine and the terminal frame loop that
// drives it.
package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
)

// Options configures Run.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Images       draw.ImageSource
	Sounds       object.SoundPlayer
	Logger       *log.Logger
	FPS          int // Defaults to DefaultFPS
	Clock        Clock
	Rand         object.Rand

	// Disconnected closes when the player's connection is gone. Run then
	// returns without drawing, unlike a cancelled ctx which means the server
	// is shutting down.
	Disconnected <-chan struct{}

	// ShutdownDisplay is how long the shutdown notice stays up when ctx is
	// cancelled. Defaults to three seconds.
	ShutdownDisplay time.Duration
}

// Run starts the main game loop with the standard Input → Update → Draw cycle.
// It returns when the player quits or disconnects, the input closes, or ctx is
// cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.Images == nil {
		return errors.New("run game: no image source")
	}
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	frameTime := time.Second / time.Duration(fps)
	if opts.ShutdownDisplay <= 0 {
		opts.ShutdownDisplay = shutdownDisplay
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game := NewGame(GameOptions{
		Screen: object.Screen{Width: PlayfieldWidth, Height: PlayfieldHeight},
		Clock:  opts.Clock,
		Rand:   opts.Rand,
		Sounds: opts.Sounds,
		Logger: logger,
	})
	stream := input.StartStream(r)
	defer stream.Stop()

	cw := draw.NewChunkWriter(w)
	cw.Open()
	defer func() {
		_ = cw.Close()
	}()

	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	view := newTerminalView(termWidth, termHeight, opts.Images)

	logger.Debug("game loop started", "fps", fps, "cols", termWidth, "rows", termHeight)

	for {
		frameStart := time.Now()

		select {
		case <-opts.Disconnected:
			logger.Debug("player disconnected", "wave", game.Wave())
			return nil
		case <-ctx.Done():
			logger.Info("game loop interrupted", "wave", game.Wave())
			return showShutdown(game, view, cw, opts.ShutdownDisplay)
		default:
		}

		// ===== INPUT PHASE =====
		in := input.ReadInput(stream, frameStart)
		if in.IsHeld(input.KeyQuit) || stream.Closed() {
			logger.Debug("game loop stopped", "wave", game.Wave())
			return nil
		}
		game.SetInput(in)

		// ===== UPDATE PHASE =====
		termWidth, termHeight, err := sizeFunc()
		if err != nil {
			return fmt.Errorf("terminal size: %w", err)
		}
		view.resize(termWidth, termHeight, cw)
		wasOver := game.GameOver()
		game.Update()
		if wasOver && !game.GameOver() {
			stream.Reset() // ENTER must not leak into the new game
		}

		// ===== DRAW PHASE =====
		if err := view.drawFrame(game, cw); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}

// showShutdown leaves the shutdown notice on screen for a moment before the
// session ends.
func showShutdown(game *Game, view *terminalView, cw *draw.ChunkWriter, wait time.Duration) error {
	game.ShowMessage(MessageShutdown, true)
	if err := view.drawFrame(game, cw); err != nil {
		return err
	}
	time.Sleep(wait)
	return nil
}
