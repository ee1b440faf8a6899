// Package input turns a raw terminal byte stream into per-frame key
// actions.
package input

import (
	"bufio"
)

// Input is what the user asked for since the previous frame. Counters are
// edge counts: holding a key that auto-repeats counts every repeat.
type Input struct {
	Quit    bool
	Launch  int // Space
	Faster  int // '+', '=' or up arrow
	Slower  int // '-', '_' or down arrow
	Pause   int // 'p'
	Closed  bool
	Pressed []byte
}

// Any reports whether the input holds at least one recognised action.
func (in Input) Any() bool {
	return in.Quit || in.Launch > 0 || in.Faster > 0 || in.Slower > 0 || in.Pause > 0
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them. Once the underlying reader fails the input reports Closed
// and Quit on every call.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
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

	in := Parse(buf)
	if s.closed {
		in.Closed = true
		in.Quit = true
	}
	return in
}

// Parse maps raw key bytes to actions. Arrow keys arrive as ESC [ A..D; a
// lone ESC quits.
func Parse(buf []byte) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A': // Up arrow
				in.Faster++
			case 'B': // Down arrow
				in.Slower++
			}
			i += 2
			continue
		}

		switch b {
		case 'q', 'Q', '\x1b', '\x03':
			in.Quit = true
		case ' ':
			in.Launch++
		case '+', '=':
			in.Faster++
		case '-', '_':
			in.Slower++
		case 'p', 'P':
			in.Pause++
		}
	}

	return in
}
