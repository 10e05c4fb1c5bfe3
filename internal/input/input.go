package input

import (
	"bufio"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last byte.
// Terminals report no key-up events, so held keys are inferred from the
// autorepeat stream.
const keyHoldDuration = 120 * time.Millisecond

// escapeTimeout is how long a trailing ESC waits for the rest of an arrow
// sequence before it counts as the Escape key itself.
const escapeTimeout = 50 * time.Millisecond

// keyState tracks the last time each held key was seen.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	fire  time.Time
	pulse time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch       chan byte
	done     chan struct{}
	stopOnce sync.Once
	state    keyState
	closed   bool

	// unfinished escape sequence carried into the next poll
	pending   []byte
	pendingAt time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
	}
	go func() {
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

// Stop releases the reader goroutine once nobody polls anymore. A read that
// is already blocked returns when the underlying reader does.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Closed reports whether the underlying reader has hit EOF or an error.
func (s *Stream) Closed() bool {
	return s.closed
}

// Poll drains all available bytes without blocking and returns the actions
// for this tick.
func (s *Stream) Poll() Actions {
	return s.apply(s.drain(), time.Now())
}

func (s *Stream) drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// apply parses the bytes seen this tick, refreshing held-key timestamps and
// collecting edge-triggered presses.
func (s *Stream) apply(in []byte, now time.Time) Actions {
	var a Actions

	buf, carried := in, len(s.pending) > 0
	if carried {
		if len(in) == 0 {
			if now.Sub(s.pendingAt) >= escapeTimeout {
				a.Quit = len(s.pending) == 1
				s.pending = s.pending[:0]
			}
			return s.held(a, now)
		}
		buf = append(s.pending, in...)
		s.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByte(&s.state, &a, b, now)
			continue
		}

		rest := buf[i+1:]
		switch {
		case len(rest) == 0 || (len(rest) == 1 && isIntroducer(rest[0])):
			if !carried || i > 0 {
				s.pendingAt = now
			}
			s.pending = append([]byte(nil), buf[i:]...)
			i = len(buf)
		case isIntroducer(rest[0]):
			// CSI (ESC [ x) or SS3 (ESC O x)
			s.arrow(rest[1], now)
			i += 2
		default:
			a.Quit = true
		}
	}

	return s.held(a, now)
}

func isIntroducer(b byte) bool { return b == '[' || b == 'O' }

func (s *Stream) arrow(code byte, now time.Time) {
	switch code {
	case 'A':
		s.state.up = now
	case 'B':
		s.state.down = now
	case 'C':
		s.state.right = now
	case 'D':
		s.state.left = now
	}
}

func (s *Stream) held(a Actions, now time.Time) Actions {
	a.Left = now.Sub(s.state.left) < keyHoldDuration
	a.Right = now.Sub(s.state.right) < keyHoldDuration
	a.Up = now.Sub(s.state.up) < keyHoldDuration
	a.Down = now.Sub(s.state.down) < keyHoldDuration
	a.Fire = now.Sub(s.state.fire) < keyHoldDuration
	a.Pulse = now.Sub(s.state.pulse) < keyHoldDuration
	return a
}

// applyByte maps a single byte to held-key state or an edge action.
func applyByte(state *keyState, a *Actions, b byte, now time.Time) {
	switch b {
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		state.fire = now
		a.Confirm = true
	case 'z', 'Z':
		state.fire = now
	case 'x', 'X':
		state.pulse = now
	case '\n', '\r':
		a.Confirm = true
	case 'p', 'P':
		a.Pause = true
	case 'q', 'Q', '\x03':
		a.Quit = true
	}
}
