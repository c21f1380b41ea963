package commands

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

func newCommands() *Commands {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewCommands(log)
}

func TestExec(t *testing.T) {
	c := newCommands()
	var got []string
	c.Register("set", func(args []string) error {
		got = args
		return nil
	})

	if err := c.Exec("  set relativeLineNumbers true "); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"relativeLineNumbers", "true"}, got); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestExecPrefix(t *testing.T) {
	c := newCommands()
	var ran string
	for _, name := range []string{"write", "wq", "quit"} {
		name := name
		c.Register(name, func([]string) error {
			ran = name
			return nil
		})
	}

	for line, want := range map[string]string{"w": "write", "wq": "wq", "q": "quit", "wri": "write"} {
		ran = ""
		if err := c.Exec(line); err != nil {
			t.Fatal(err)
		}
		if ran != want {
			t.Errorf("Exec(%q) ran %q, want %q", line, ran, want)
		}
	}
}

func TestExecPrefixTie(t *testing.T) {
	c := newCommands()
	var ran string
	for _, name := range []string{"stat", "save"} {
		name := name
		c.Register(name, func([]string) error {
			ran = name
			return nil
		})
	}

	for i := 0; i < 100; i++ {
		if err := c.Exec("s"); err != nil {
			t.Fatal(err)
		}
		if ran != "save" {
			t.Fatalf("Exec(\"s\") ran %q on try %d, want \"save\"", ran, i)
		}
	}
}

func TestExecUnknown(t *testing.T) {
	c := newCommands()
	if err := c.Exec("frobnicate"); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
	if err := c.Exec("   "); err != nil {
		t.Fatalf("expected an empty line to do nothing, got %v", err)
	}
}

func TestExecWrapsError(t *testing.T) {
	c := newCommands()
	boom := errors.New("boom")
	c.Register("fail", func([]string) error { return boom })

	if err := c.Exec("fail"); !xerrors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestNames(t *testing.T) {
	c := newCommands()
	c.Register("write", nil)
	c.Register("dump", nil)
	if diff := cmp.Diff([]string{"dump", "write"}, c.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}
