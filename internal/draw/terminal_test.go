package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 10, 2)
	cw.WriteAt(1, 1, "x")
	if out.Len() != 0 {
		t.Fatal("output written before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := out.String(); got != "\033[3;11Hx" {
		t.Errorf("output = %q", got)
	}
}

func TestWriteLinePadsStyledText(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	cw.WriteLine(5, 8, "\033[1mab\033[0m")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "\033[5;1H\033[1mab\033[0m      "
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriteLineDoesNotTruncate(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	cw.WriteLine(1, 2, "long")
	_ = cw.Flush()
	if got := out.String(); got != "\033[1;1Hlong" {
		t.Errorf("output = %q", got)
	}
}

func TestWriteCentered(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	cw.WriteCentered(10, 4, "abcd", "", "ab")
	_ = cw.Flush()
	want := "\033[4;8Habcd\033[6;9Hab"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFlushEmptiesQueue(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	big := strings.Repeat("y", 3*maxChunkSize+7)
	cw.WriteString(big)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if out.String() != big {
		t.Fatalf("flushed %d bytes, want %d", out.Len(), len(big))
	}
	out.Reset()
	cw.Clear()
	_ = cw.Flush()
	if got := out.String(); got != "\033[H\033[2J" {
		t.Errorf("second flush = %q", got)
	}
}
