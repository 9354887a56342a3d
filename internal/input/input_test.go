package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/starfall/internal/object"
)

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestRead_Keys(t *testing.T) {
	tests := []struct {
		name  string
		bytes string
		check func(Input) bool
	}{
		{"Arrow up", "\x1b[A", func(in Input) bool { return in.Up && !in.Escape }},
		{"Arrow down", "\x1b[B", func(in Input) bool { return in.Down }},
		{"Arrow right", "\x1b[C", func(in Input) bool { return in.Right }},
		{"Arrow left", "\x1b[D", func(in Input) bool { return in.Left }},
		{"WASD", "wasd", func(in Input) bool { return in.Up && in.Left && in.Down && in.Right }},
		{"Fire", " ", func(in Input) bool { return in.Fire }},
		{"Restart", "R", func(in Input) bool { return in.Restart }},
		{"Quit", "q", func(in Input) bool { return in.Quit }},
		{"Ctrl+C", "\x03", func(in Input) bool { return in.Quit }},
		{"Enter", "\r", func(in Input) bool { return in.Enter }},
		{"Bare escape", "\x1b", func(in Input) bool { return in.Escape }},
		{"Digit", "3", func(in Input) bool { return in.Number == 3 }},
		{"No digit", "x", func(in Input) bool { return in.Number == -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream()
			feed(s, tt.bytes)
			in := s.read(time.Now())
			if !tt.check(in) {
				t.Errorf("input for %q = %+v", tt.bytes, in)
			}
			if string(in.Pressed) != tt.bytes {
				t.Errorf("Pressed = %q, want %q", in.Pressed, tt.bytes)
			}
		})
	}
}

func TestRead_HoldDuration(t *testing.T) {
	s := newStream()
	start := time.Now()

	feed(s, " d")
	if in := s.read(start); !in.Fire || !in.Right {
		t.Fatalf("input = %+v, want fire and right", in)
	}
	if in := s.read(start.Add(keyHoldDuration - time.Millisecond)); !in.Fire || !in.Right {
		t.Errorf("keys released before the hold duration: %+v", in)
	}
	if in := s.read(start.Add(keyHoldDuration)); in.Fire || in.Right {
		t.Errorf("keys still held after the hold duration: %+v", in)
	}
}

func TestRead_Closed(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("q")))

	deadline := time.Now().Add(2 * time.Second)
	for {
		in := ReadInput(s)
		if in.Closed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("stream never reported closed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestInput_Game(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want object.Input
	}{
		{"Idle", Input{}, object.Input{}},
		{"Up left", Input{Up: true, Left: true}, object.Input{DX: -1, DY: -1}},
		{"Opposites cancel", Input{Left: true, Right: true, Down: true}, object.Input{DY: 1}},
		{"Fire and restart", Input{Fire: true, Restart: true}, object.Input{Fire: true, Restart: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Game(); got != tt.want {
				t.Errorf("Game() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
