package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	shutdownTimeout    = 15 * time.Second
)

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	fps := config.GetEnvInt("INVADERS_FPS", loop.DefaultFPS)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "fps", fps)

	// One registry for every session; lookups are memoized behind a mutex
	registry := asset.NewBuiltinRegistry()
	if err := registry.Validate(asset.Names...); err != nil {
		logger.Fatal("failed to load resources", "err", err)
	}

	// Cancelled on shutdown so every session shows the notice and ends
	gameCtx, cancelGames := context.WithCancel(context.Background())
	defer cancelGames()

	h := &gameHandler{
		ctx:      gameCtx,
		registry: registry,
		logger:   logger,
		fps:      fps,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Tell every player and wait for their sessions to wind down
	cancelGames()
	h.wait(shutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameHandler runs one independent game per SSH session.
type gameHandler struct {
	ctx      context.Context
	registry *asset.Registry
	logger   *log.Logger
	fps      int
	sessions sync.WaitGroup
}

// middleware handles SSH sessions and runs the game.
func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		h.sessions.Add(1)
		defer h.sessions.Done()

		logger := h.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("New game session", "terminal", pty.Term, "cols", pty.Window.Width, "rows", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		// h.ctx only ends on server shutdown. A client that goes away ends
		// its game quietly through Disconnected. No audio over SSH.
		err := loop.Run(h.ctx, bufio.NewReader(sess), sess, loop.Options{
			Disconnected: sess.Context().Done(),
			TermSizeFunc: sizeTracker.getSize,
			Images:       h.registry,
			Sounds:       &asset.Sounds{Registry: h.registry},
			Logger:       logger,
			FPS:          h.fps,
		})
		switch {
		case err != nil && sess.Context().Err() != nil:
			logger.Debug("Write after disconnect", "err", err)
		case err != nil:
			logger.Error("Game error", "err", err)
		}

		logger.Info("Session ended")
		next(sess)
	}
}

// wait blocks until every session has ended or the timeout passes.
func (h *gameHandler) wait(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		h.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
		h.logger.Info("All sessions ended")
	case <-time.After(timeout):
		h.logger.Warn("Sessions still open after timeout", "timeout", timeout)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
