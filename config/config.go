// Package config loads the editor settings from a JSON file in the user's
// config directory and reloads them when the file changes.
package config

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/xerrors"
)

//go:embed config.json
var defaults embed.FS

const confName = "config.json"

type EditorConfig struct {
	RelativeLineNumbers bool
	TrimFiles           bool
	TabWidth            int
	LineNumberWidth     int
}

type kind int

const (
	boolKind kind = iota
	intKind
)

// keys are the settings accepted by Set, relative to "editor".
var keys = map[string]kind{
	"relativeLineNumbers": boolKind,
	"trimFiles":           boolKind,
	"tabWidth":            intKind,
	"lineNumberWidth":     intKind,
}

type Config struct {
	log     *logrus.Logger
	watcher *fsnotify.Watcher

	dir, file string

	mu     sync.RWMutex
	editor EditorConfig

	// OnReload is called from the watcher goroutine after the file was
	// re-read.
	OnReload func(EditorConfig)
}

func NewConfig(log *logrus.Logger) *Config {
	return &Config{log: log}
}

// Dir is $XDG_CONFIG_HOME/ropedit, falling back to $HOME/.ropedit.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ropedit")
	}
	return filepath.Join(os.Getenv("HOME"), ".ropedit")
}

// Init reads the config from Dir, writing the defaults first if the file is
// missing.
func (cfg *Config) Init() error {
	return cfg.InitIn(Dir())
}

func (cfg *Config) InitIn(dir string) error {
	cfg.dir = dir
	cfg.file = filepath.Join(dir, confName)

	if err := cfg.writeConfigIfMissing(); err != nil {
		return err
	}
	return cfg.readConfigIntoMemory()
}

// Editor returns a copy of the current settings.
func (cfg *Config) Editor() EditorConfig {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.editor
}

func (cfg *Config) File() string {
	return cfg.file
}

func (cfg *Config) writeConfigIfMissing() error {
	if _, err := os.Stat(cfg.file); err == nil {
		return nil
	}

	content, err := fs.ReadFile(defaults, confName)
	if err != nil {
		return xerrors.Errorf("read embedded config: %w", err)
	}
	if err := os.MkdirAll(cfg.dir, 0755); err != nil {
		return xerrors.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(cfg.file, content, 0664); err != nil {
		return xerrors.Errorf("write default config: %w", err)
	}

	cfg.log.WithField("file", cfg.file).Info("wrote default config")
	return nil
}

func (cfg *Config) readConfigIntoMemory() error {
	content, err := os.ReadFile(cfg.file)
	if err != nil {
		return xerrors.Errorf("read config: %w", err)
	}
	base, err := fs.ReadFile(defaults, confName)
	if err != nil {
		return xerrors.Errorf("read embedded config: %w", err)
	}
	if !gjson.ValidBytes(content) {
		return xerrors.Errorf("config %s is not valid JSON", cfg.file)
	}

	editor := parse(base, EditorConfig{})
	editor = parse(content, editor)

	cfg.mu.Lock()
	cfg.editor = editor
	cfg.mu.Unlock()

	cfg.log.WithField("config", editor).Debug("loaded config")
	return nil
}

// parse overlays the settings present in content onto editor.
func parse(content []byte, editor EditorConfig) EditorConfig {
	section := gjson.GetBytes(content, "editor")
	if v := section.Get("relativeLineNumbers"); v.Exists() {
		editor.RelativeLineNumbers = v.Bool()
	}
	if v := section.Get("trimFiles"); v.Exists() {
		editor.TrimFiles = v.Bool()
	}
	if v := section.Get("tabWidth"); v.Exists() {
		editor.TabWidth = int(v.Int())
	}
	if v := section.Get("lineNumberWidth"); v.Exists() {
		editor.LineNumberWidth = int(v.Int())
	}
	return editor
}

// Set stores a single editor setting in the config file and applies it.
func (cfg *Config) Set(key, value string) error {
	k, ok := keys[key]
	if !ok {
		return xerrors.Errorf("unknown setting %q", key)
	}

	var v interface{}
	var err error
	switch k {
	case boolKind:
		v, err = strconv.ParseBool(value)
	case intKind:
		v, err = strconv.Atoi(value)
	}
	if err != nil {
		return xerrors.Errorf("setting %s: %w", key, err)
	}

	content, err := os.ReadFile(cfg.file)
	if err != nil {
		return xerrors.Errorf("read config: %w", err)
	}
	content, err = sjson.SetBytes(content, "editor."+key, v)
	if err != nil {
		return xerrors.Errorf("update config: %w", err)
	}
	if err := os.WriteFile(cfg.file, content, 0664); err != nil {
		return xerrors.Errorf("write config: %w", err)
	}

	cfg.log.WithFields(logrus.Fields{"key": key, "value": v}).Info("changed setting")
	return cfg.readConfigIntoMemory()
}

// Watch re-reads the config whenever the file is written. It returns once
// the watcher is installed.
func (cfg *Config) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return xerrors.Errorf("create file watcher: %w", err)
	}
	// Watch the directory; editors often replace the file instead of writing it.
	if err := watcher.Add(cfg.dir); err != nil {
		watcher.Close()
		return xerrors.Errorf("watch config directory: %w", err)
	}
	cfg.watcher = watcher

	go cfg.rereadConfigOnFileChange(watcher)
	return nil
}

func (cfg *Config) rereadConfigOnFileChange(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(cfg.file) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := cfg.readConfigIntoMemory(); err != nil {
				cfg.log.WithError(err).Warn("could not reload config")
				continue
			}
			if cfg.OnReload != nil {
				cfg.OnReload(cfg.Editor())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			cfg.log.WithError(err).Error("config watcher")
		}
	}
}

func (cfg *Config) Cleanup() {
	if cfg.watcher != nil {
		cfg.watcher.Close()
	}
}
