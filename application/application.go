// Package application runs the editor: it owns the screen and the buffer
// and turns terminal events into buffer edits. All buffer access happens on
// the goroutine that calls Run.
package application

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"ropedit/buffer"
	"ropedit/commands"
	"ropedit/config"
	"ropedit/layout"
)

type mode int

const (
	editMode mode = iota
	commandMode
)

func (m mode) String() string {
	if m == commandMode {
		return "Command"
	}
	return "Edit"
}

// Cursor is a position in the buffer, in runes.
type Cursor struct {
	row, col int
}

type Application struct {
	buf      *buffer.Buffer
	cursor   Cursor
	top      int // first buffer row on screen
	config   *config.Config
	commands *commands.Commands
	screen   tcell.Screen

	mode    mode
	prompt  []rune
	message string
	done    bool
	// set after a quit was refused for an unnamed modified buffer
	discardArmed bool

	// where the buffer was drawn last, for mapping the cursor and mouse
	bufferArea layout.Dimensions

	log *logrus.Logger
}

func New(screen tcell.Screen, buf *buffer.Buffer, cfg *config.Config, log *logrus.Logger) *Application {
	app := &Application{
		buf:      buf,
		config:   cfg,
		commands: commands.NewCommands(log),
		screen:   screen,
		log:      log,
	}
	app.registerCommands()
	return app
}

func (app *Application) registerCommands() {
	app.commands.Register("write", func(args []string) error {
		if len(args) > 0 {
			app.buf.SetPath(args[0])
		}
		return app.save()
	})
	app.commands.Register("quit", func([]string) error {
		app.quit()
		return nil
	})
	app.commands.Register("stats", func([]string) error {
		app.message = app.buf.Stats().String()
		return nil
	})
	app.commands.Register("dump", func([]string) error {
		app.dump()
		return nil
	})
	app.commands.Register("help", func([]string) error {
		app.message = strings.Join(app.commands.Names(), " ")
		return nil
	})
	app.commands.Register("set", func(args []string) error {
		if len(args) != 2 {
			return xerrors.New("usage: set <key> <value>")
		}
		if err := app.config.Set(args[0], args[1]); err != nil {
			return err
		}
		app.message = args[0] + " = " + args[1]
		return nil
	})
}

// Run draws and handles events until the user quits. A modified buffer with
// a file name is saved before Run returns.
func (app *Application) Run() error {
	for !app.done {
		app.draw()
		ev := app.screen.PollEvent()
		if ev == nil {
			// screen was finalized
			break
		}
		app.handleInput(ev)
	}

	if app.buf.Dirty() && app.buf.Path() != "" {
		return app.buf.Save()
	}
	return nil
}

// quit ends Run. A modified buffer without a file name has nowhere to be
// saved, so the first request only warns and a second one discards it.
func (app *Application) quit() {
	if app.buf.Dirty() && app.buf.Path() == "" {
		if !app.discardArmed {
			app.discardArmed = true
			app.message = "no file name: write <file>, or quit again to discard"
			app.log.Warn("quit refused, modified buffer has no file name")
			return
		}
		app.log.WithField("bytes", app.buf.Len()).Warn("discarding unsaved buffer")
	}
	app.done = true
}

// Refresh wakes the event loop from another goroutine so the screen is
// redrawn, e.g. after the config changed.
func (app *Application) Refresh() {
	if err := app.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		app.log.WithError(err).Debug("dropped refresh")
	}
}

func (app *Application) save() error {
	if err := app.buf.Save(); err != nil {
		return err
	}
	app.message = "wrote " + app.buf.Path()
	return nil
}

func (app *Application) dump() {
	app.log.WithField("stats", app.buf.Stats().String()).Infof("buffer: %q", app.buf.String())
	app.message = "buffer written to log"
}

func (app *Application) exec(line string) {
	app.message = ""
	if err := app.commands.Exec(line); err != nil {
		app.log.WithError(err).Warn("command failed")
		app.message = err.Error()
	}
}

func (app *Application) promptText() string {
	return ":" + string(app.prompt)
}
