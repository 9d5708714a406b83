// Package input turns raw terminal bytes into held logical keys.
package input

import (
	"bufio"
	"sync"
	"time"
)

// DefaultHoldDuration is how long a key is considered "held" after its last byte.
// Terminals never report key release, so a held key is one whose auto-repeat
// keeps arriving within this window.
const DefaultHoldDuration = 120 * time.Millisecond

// Key is a logical game key.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyFire
	KeyQuit
	KeyRestart
	keyCount
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyFire:
		return "fire"
	case KeyQuit:
		return "quit"
	case KeyRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Input represents the current frame's input state.
type Input struct {
	held [keyCount]bool
}

// IsHeld reports whether the logical key is currently held.
// Unknown keys are never held.
func (in Input) IsHeld(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return in.held[k]
}

// Holding returns an Input with exactly the given keys held.
func Holding(keys ...Key) Input {
	var in Input
	for _, k := range keys {
		if k >= 0 && k < keyCount {
			in.held[k] = true
		}
	}
	return in
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch       chan byte
	done     chan struct{} // Closed by Stop
	exited   chan struct{} // Closed when the reader goroutine returns
	stopOnce sync.Once
	lastSeen [keyCount]time.Time
	hold     time.Duration
	pending  []byte // Unfinished escape sequence carried to the next read
	closed   bool
}

// maxPending bounds an escape sequence that never terminates.
const maxPending = 16

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// Call Stop when the stream is no longer read.
func StartStream(r *bufio.Reader) *Stream {
	s := NewStream(DefaultHoldDuration)
	s.exited = make(chan struct{})
	go func() {
		defer close(s.exited)
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// NewStream creates a stream with no reader attached. Bytes are fed with Push.
func NewStream(hold time.Duration) *Stream {
	return &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
		hold: hold,
	}
}

// Push queues raw bytes as if they had been read from the terminal.
func (s *Stream) Push(b ...byte) {
	for _, c := range b {
		s.ch <- c
	}
}

// Stop releases the reader goroutine. A goroutine waiting to deliver a byte
// exits at once; one blocked reading exits when its read returns.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Reset forgets all held keys, so a key pressed to leave one screen does not
// carry over into the next.
func (s *Stream) Reset() {
	s.lastSeen = [keyCount]time.Time{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Escape sequences split across reads are completed on the next read.
func ReadInput(s *Stream, now time.Time) Input {
	buf := s.pending
	s.pending = nil

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	// Parse the collected bytes and update key state timestamps
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			if k, ok := byteKey(b); ok {
				s.lastSeen[k] = now
			}
			continue
		}

		end, complete := escapeEnd(buf, i)
		if !complete {
			if !s.closed && len(buf)-i < maxPending {
				s.pending = append([]byte(nil), buf[i:]...)
			}
			break
		}
		if end > i && (buf[i+1] == '[' || buf[i+1] == 'O') {
			if k, ok := arrowKey(buf[end]); ok {
				s.lastSeen[k] = now
			}
		}
		i = end
	}

	// Keys are held if seen within the hold duration
	var in Input
	for k := range s.lastSeen {
		seen := s.lastSeen[k]
		in.held[k] = !seen.IsZero() && now.Sub(seen) < s.hold
	}
	return in
}

// escapeEnd returns the index of the last byte of the escape sequence
// starting at buf[i]. CSI sequences (ESC [) run to their final byte in
// 0x40-0x7E, SS3 sequences (ESC O) are three bytes. Any other byte after
// ESC is not part of a sequence, so end is i and the byte is read normally.
// complete is false when buf ends before the sequence does.
func escapeEnd(buf []byte, i int) (end int, complete bool) {
	if i+1 >= len(buf) {
		return 0, false
	}
	switch buf[i+1] {
	case '[':
		for j := i + 2; j < len(buf); j++ {
			if buf[j] >= 0x40 && buf[j] <= 0x7e {
				return j, true
			}
		}
		return 0, false
	case 'O':
		if i+2 >= len(buf) {
			return 0, false
		}
		return i + 2, true
	}
	return i, true
}

func arrowKey(code byte) (Key, bool) {
	switch code {
	case 'A': // Up arrow
		return KeyFire, true
	case 'C': // Right arrow
		return KeyRight, true
	case 'D': // Left arrow
		return KeyLeft, true
	}
	return 0, false
}

// byteKey maps a single byte to its logical key. Unmapped bytes are ignored.
func byteKey(b byte) (Key, bool) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		return KeyQuit, true
	case 'a', 'A', 'h', 'H':
		return KeyLeft, true
	case 'd', 'D', 'l', 'L':
		return KeyRight, true
	case ' ', 'w', 'W', 'k', 'K':
		return KeyFire, true
	case '\n', '\r':
		return KeyRestart, true
	}
	return 0, false
}
