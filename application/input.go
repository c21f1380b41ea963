package application

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

func (app *Application) handleInput(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
	case *tcell.EventKey:
		if app.mode == commandMode {
			app.handlePromptKey(ev)
		} else {
			app.handleEditKey(ev)
		}
	case *tcell.EventMouse:
		if ev.Buttons() == tcell.Button1 {
			app.moveToScreen(ev.Position())
		}
	}
}

func (app *Application) handleEditKey(ev *tcell.EventKey) {
	cursor := &app.cursor

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		app.quit()
	case tcell.KeyCtrlL:
		app.screen.Sync()
	case tcell.KeyCtrlS:
		app.exec("write")
	case tcell.KeyCtrlE:
		app.mode = commandMode
		app.prompt = app.prompt[:0]
	case tcell.KeyF1:
		app.dump()
	case tcell.KeyUp:
		cursor.row--
	case tcell.KeyDown:
		cursor.row++
	case tcell.KeyLeft:
		if cursor.col == 0 && cursor.row > 0 {
			cursor.row--
			cursor.col = app.buf.LineLen(cursor.row)
		} else {
			cursor.col--
		}
	case tcell.KeyRight:
		if cursor.col >= app.buf.LineLen(cursor.row) && cursor.row < app.buf.LineCount()-1 {
			cursor.row++
			cursor.col = 0
		} else {
			cursor.col++
		}
	case tcell.KeyHome:
		cursor.col = 0
	case tcell.KeyEnd:
		cursor.col = app.buf.LineLen(cursor.row)
	case tcell.KeyRune:
		app.buf.InsertChar(cursor.row, cursor.col, ev.Rune())
		cursor.col++
	case tcell.KeyTab:
		width := max(app.config.Editor().TabWidth, 1)
		for i := 0; i < width; i++ {
			app.buf.InsertChar(cursor.row, cursor.col, ' ')
			cursor.col++
		}
	case tcell.KeyEnter:
		app.buf.InsertChar(cursor.row, cursor.col, '\n')
		cursor.row++
		cursor.col = 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		cursor.row, cursor.col = app.buf.DeleteAt(cursor.row, cursor.col)
	case tcell.KeyDelete:
		if cursor.col < app.buf.LineLen(cursor.row) {
			app.buf.DeleteAt(cursor.row, cursor.col+1)
		} else if cursor.row < app.buf.LineCount()-1 {
			app.buf.DeleteAt(cursor.row+1, 0)
		}
	}

	app.clampCursor()
}

func (app *Application) handlePromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		app.mode = editMode
	case tcell.KeyEnter:
		app.mode = editMode
		app.exec(strings.TrimSpace(string(app.prompt)))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(app.prompt) == 0 {
			app.mode = editMode
			return
		}
		app.prompt = app.prompt[:len(app.prompt)-1]
	case tcell.KeyRune:
		app.prompt = append(app.prompt, ev.Rune())
	}
}

// clampCursor keeps the cursor inside the text.
func (app *Application) clampCursor() {
	cursor := &app.cursor
	cursor.row = max(0, min(cursor.row, app.buf.LineCount()-1))
	cursor.col = max(0, min(cursor.col, app.buf.LineLen(cursor.row)))
}

func (app *Application) moveToScreen(x, y int) {
	area := app.bufferArea
	if x < area.Origin.X || y < area.Origin.Y || y >= area.Origin.Y+area.Height {
		return
	}

	app.cursor.row = app.top + y - area.Origin.Y
	app.clampCursor()
	app.cursor.col = columnAt(app.buf.Line(app.cursor.row), x-area.Origin.X, app.tabWidth())
	app.clampCursor()
}
