package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/xerrors"

	"ropedit/rope"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	text := strings.Repeat("line with ünïcode\n", 5000)

	if err := Write(path, rope.FromString(text).Reader()); err != nil {
		t.Fatal(err)
	}

	r, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != text {
		t.Fatalf("read back %d bytes, wrote %d", r.Len(), len(text))
	}
	if r.LineCount() != 5001 {
		t.Fatalf("expected 5001 lines, got %d", r.LineCount())
	}
}

func TestWriteTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("a much longer previous content"), 0666); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, rope.FromString("short").Reader()); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "short" {
		t.Fatalf("expected 'short', got '%s'", got)
	}
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.txt"))
	if !xerrors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}
