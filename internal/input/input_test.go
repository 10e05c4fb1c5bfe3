package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestApplyHeldKeys(t *testing.T) {
	var s Stream
	now := time.Now()

	a := s.apply([]byte("a\x1b[A"), now)
	if !a.Left || !a.Up {
		t.Fatalf("expected left and up held, got %+v", a)
	}
	if a.Right || a.Down || a.Quit {
		t.Fatalf("unexpected actions: %+v", a)
	}

	// Still held within the hold window without new bytes.
	a = s.apply(nil, now.Add(keyHoldDuration/2))
	if !a.Left || !a.Up {
		t.Errorf("keys released too early: %+v", a)
	}

	a = s.apply(nil, now.Add(keyHoldDuration))
	if a.Left || a.Up {
		t.Errorf("keys still held after window: %+v", a)
	}
}

func TestApplyEdgeActionsLastOneTick(t *testing.T) {
	var s Stream
	now := time.Now()

	a := s.apply([]byte("p"), now)
	if !a.Pause {
		t.Fatal("expected pause on the press tick")
	}
	a = s.apply(nil, now.Add(time.Millisecond))
	if a.Pause {
		t.Error("pause should not repeat without a new press")
	}
}

func TestApplySpaceFiresAndConfirms(t *testing.T) {
	var s Stream
	now := time.Now()

	a := s.apply([]byte(" "), now)
	if !a.Fire || !a.Confirm {
		t.Fatalf("space = %+v, want fire and confirm", a)
	}
	a = s.apply(nil, now.Add(10*time.Millisecond))
	if !a.Fire {
		t.Error("fire should stay held")
	}
	if a.Confirm {
		t.Error("confirm should be edge-triggered")
	}
}

func TestApplyArrowSequencesDoNotQuit(t *testing.T) {
	var s Stream
	a := s.apply([]byte("\x1b[C\x1b[D"), time.Now())
	if a.Quit {
		t.Error("arrow keys must not be read as a bare escape")
	}
	if !a.Left || !a.Right {
		t.Errorf("arrows = %+v", a)
	}
}

func TestApplyQuitKeys(t *testing.T) {
	for _, in := range []string{"q", "Q", "\x03"} {
		var s Stream
		if a := s.apply([]byte(in), time.Now()); !a.Quit {
			t.Errorf("%q did not quit", in)
		}
	}
}

func TestApplySplitArrowSequence(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{"esc then rest", []string{"\x1b", "[A"}},
		{"esc bracket then code", []string{"\x1b[", "A"}},
		{"one byte at a time", []string{"\x1b", "[", "A"}},
		{"ss3", []string{"\x1bOA"}},
		{"split ss3", []string{"\x1b", "OA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Stream
			now := time.Now()
			var a Actions
			for i, part := range tt.parts {
				a = s.apply([]byte(part), now.Add(time.Duration(i)*time.Millisecond))
				if a.Quit {
					t.Fatalf("poll %d quit on a partial arrow sequence", i)
				}
				if a.Left {
					t.Fatalf("poll %d read the final byte as a letter key", i)
				}
			}
			if !a.Up {
				t.Errorf("arrow not registered: %+v", a)
			}
		})
	}
}

func TestApplyLoneEscapeQuitsAfterTimeout(t *testing.T) {
	var s Stream
	now := time.Now()

	if a := s.apply([]byte("\x1b"), now); a.Quit {
		t.Fatal("escape quit before the sequence timeout")
	}
	if a := s.apply(nil, now.Add(escapeTimeout/2)); a.Quit {
		t.Fatal("escape quit before the sequence timeout")
	}
	if a := s.apply(nil, now.Add(escapeTimeout)); !a.Quit {
		t.Fatal("lone escape never quit")
	}
	if a := s.apply(nil, now.Add(2*escapeTimeout)); a.Quit {
		t.Error("escape quit twice for one press")
	}
}

func TestApplyEscapeBeforeKeyQuits(t *testing.T) {
	var s Stream
	if a := s.apply([]byte("\x1bp"), time.Now()); !a.Quit || !a.Pause {
		t.Errorf("escape followed by p = %+v", a)
	}
}

func TestApplyStaleBracketIsDropped(t *testing.T) {
	var s Stream
	now := time.Now()
	s.apply([]byte("\x1b["), now)
	if a := s.apply(nil, now.Add(escapeTimeout)); a.Quit {
		t.Error("incomplete sequence read as escape")
	}
	if a := s.apply([]byte("A"), now.Add(2*escapeTimeout)); !a.Left || a.Up {
		t.Errorf("later letter key = %+v", a)
	}
}

func TestAxis(t *testing.T) {
	dx, dy := Actions{Left: true, Down: true}.Axis()
	if dx != -1 || dy != 1 {
		t.Errorf("Axis = (%v, %v)", dx, dy)
	}
	dx, dy = Actions{Left: true, Right: true}.Axis()
	if dx != 0 || dy != 0 {
		t.Errorf("opposing keys Axis = (%v, %v)", dx, dy)
	}
}

func TestStopReleasesBlockedReader(t *testing.T) {
	// More bytes than the channel holds, with nobody polling.
	s := StartStream(bufio.NewReader(strings.NewReader(strings.Repeat("w", 512))))
	s.Stop()
	s.Stop()
	time.Sleep(50 * time.Millisecond)

	deadline := time.After(time.Second)
	received := 0
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				if received >= 512 {
					t.Errorf("reader kept sending after Stop: %d bytes", received)
				}
				return
			}
			received++
		case <-deadline:
			t.Fatal("reader goroutine still running after Stop")
		}
	}
}

func TestStreamClosesOnEOF(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("x")))

	deadline := time.After(time.Second)
	for !s.Closed() {
		select {
		case <-deadline:
			t.Fatal("stream never reported closed")
		default:
		}
		s.Poll()
		time.Sleep(time.Millisecond)
	}
}
