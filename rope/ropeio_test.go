package rope

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestIO(t *testing.T) {
	r := FromString("Hello, world!")
	w := NewWriter()

	if _, err := io.Copy(w, r.Reader()); err != nil {
		t.Fatal(err)
	}

	expectString(r.String(), w.Rope().String(), t)
}

func TestReader(t *testing.T) {
	s := strings.Repeat("ünïcode and ascii\n", 40)
	if err := iotest.TestReader(FromString(s).Reader(), []byte(s)); err != nil {
		t.Fatal(err)
	}
}

func TestReaderEmpty(t *testing.T) {
	n, err := New().Reader().Read(make([]byte, 4))
	if n != 0 || err != io.EOF {
		t.Fatalf("expected (0, EOF), got (%d, %v)", n, err)
	}
}

func TestWriterSplitCharacter(t *testing.T) {
	s := "ab世界cd"
	w := NewWriter()
	// Feed one byte at a time so every multi-byte character is cut.
	if _, err := io.Copy(w, iotest.OneByteReader(bytes.NewBufferString(s))); err != nil {
		t.Fatal(err)
	}
	r := w.Rope()
	expectString(s, r.String(), t)
	expectString(s, string(r.Runes()), t)
	expectInt(0, w.Rope().Len(), t)
}

func TestWriterTrailingPartial(t *testing.T) {
	w := NewWriter()
	w.Write([]byte("ok\xe4\xb8"))
	expectString("ok\xe4\xb8", w.Rope().String(), t)
}

func maxDepth(r Rope) int {
	deepest := 0
	r.Walk(func(_ string, depth int) {
		deepest = max(deepest, depth)
	})
	return deepest
}

func TestWriterIsBalanced(t *testing.T) {
	s := strings.Repeat("a line of text, ünïcode too\n", 500)
	w := NewWriter()
	for rest := s; rest != ""; {
		n := min(7, len(rest))
		if _, err := w.WriteString(rest[:n]); err != nil {
			t.Fatal(err)
		}
		rest = rest[n:]
	}
	r := w.Rope()
	expectString(s, r.String(), t)
	expectInt(maxDepth(FromString(s)), maxDepth(r), t)
}
