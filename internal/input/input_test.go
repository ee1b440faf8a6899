package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

// actions is the comparable part of an Input.
type actions struct {
	quit                          bool
	launch, faster, slower, pause int
}

func actionsOf(in Input) actions {
	return actions{in.Quit, in.Launch, in.Faster, in.Slower, in.Pause}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want actions
	}{
		{"nothing", "", actions{}},
		{"launch twice", "  ", actions{launch: 2}},
		{"speed keys", "+=-_", actions{faster: 2, slower: 2}},
		{"arrows", "\x1b[A\x1b[A\x1b[B", actions{faster: 2, slower: 1}},
		{"left arrow ignored", "\x1b[D", actions{}},
		{"pause", "pP", actions{pause: 2}},
		{"quit q", "xq", actions{quit: true}},
		{"quit escape", "\x1b", actions{quit: true}},
		{"quit ctrl-c", "\x03", actions{quit: true}},
		{"mixed", " p\x1b[B+", actions{launch: 1, pause: 1, faster: 1, slower: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]byte(tt.keys))
			if actionsOf(got) != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.keys, actionsOf(got), tt.want)
			}
			if string(got.Pressed) != tt.keys {
				t.Errorf("Pressed = %q, want %q", got.Pressed, tt.keys)
			}
		})
	}
}

func TestAny(t *testing.T) {
	if (Input{Pressed: []byte("x")}).Any() {
		t.Error("unrecognised key reported as an action")
	}
	if !(Input{Pause: 1}).Any() {
		t.Error("pause not reported as an action")
	}
}

func TestReadInputClosedStream(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader(" ")))

	var launches int
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		launches += in.Launch
		if in.Closed {
			if !in.Quit {
				t.Error("closed stream did not request quit")
			}
			if launches != 1 {
				t.Errorf("launches = %d, want 1", launches)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("stream never reported closed")
}
