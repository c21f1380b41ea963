package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func newConfig(t *testing.T) *Config {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := NewConfig(log)
	if err := cfg.InitIn(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := newConfig(t)
	want := EditorConfig{TabWidth: 4, LineNumberWidth: 4}
	if diff := cmp.Diff(want, cfg.Editor()); diff != "" {
		t.Errorf("Editor() mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(cfg.File()); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}
}

func TestUserFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `{"editor": {"relativeLineNumbers": true, "tabWidth": 8}}`
	if err := os.WriteFile(filepath.Join(dir, confName), []byte(content), 0664); err != nil {
		t.Fatal(err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := NewConfig(log)
	if err := cfg.InitIn(dir); err != nil {
		t.Fatal(err)
	}

	want := EditorConfig{RelativeLineNumbers: true, TabWidth: 8, LineNumberWidth: 4}
	if diff := cmp.Diff(want, cfg.Editor()); diff != "" {
		t.Errorf("Editor() mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, confName), []byte("{nope"), 0664); err != nil {
		t.Fatal(err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	if err := NewConfig(log).InitIn(dir); err == nil {
		t.Fatal("expected an error for a malformed config")
	}
}

func TestSet(t *testing.T) {
	cfg := newConfig(t)
	if err := cfg.Set("relativeLineNumbers", "true"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Set("lineNumberWidth", "6"); err != nil {
		t.Fatal(err)
	}

	editor := cfg.Editor()
	if !editor.RelativeLineNumbers || editor.LineNumberWidth != 6 {
		t.Fatalf("settings not applied: %+v", editor)
	}

	// A fresh load sees the persisted values.
	reloaded := NewConfig(cfg.log)
	if err := reloaded.InitIn(filepath.Dir(cfg.File())); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(editor, reloaded.Editor()); diff != "" {
		t.Errorf("reloaded config mismatch (-want +got):\n%s", diff)
	}
}

func TestSetRejects(t *testing.T) {
	cfg := newConfig(t)
	if err := cfg.Set("fontSize", "12"); err == nil {
		t.Error("expected an error for an unknown setting")
	}
	if err := cfg.Set("tabWidth", "wide"); err == nil {
		t.Error("expected an error for a non-numeric width")
	}
	if err := cfg.Set("trimFiles", "maybe"); err == nil {
		t.Error("expected an error for a non-boolean flag")
	}
}

func TestWatch(t *testing.T) {
	cfg := newConfig(t)
	reloaded := make(chan EditorConfig, 8)
	cfg.OnReload = func(editor EditorConfig) { reloaded <- editor }

	if err := cfg.Watch(); err != nil {
		t.Fatal(err)
	}
	defer cfg.Cleanup()

	content := `{"editor": {"tabWidth": 2}}`
	if err := os.WriteFile(cfg.File(), []byte(content), 0664); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case editor := <-reloaded:
			if editor.TabWidth == 2 {
				return
			}
		case <-timeout:
			t.Fatal("config was not reloaded after the file changed")
		}
	}
}
