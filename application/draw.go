package application

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"ropedit/layout"
)

var (
	DefaultStyle = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	LightStyle   = DefaultStyle.Dim(true)
	StatusStyle  = DefaultStyle.Reverse(true)
)

func (app *Application) tabWidth() int {
	return max(app.config.Editor().TabWidth, 1)
}

func (app *Application) draw() {
	s := app.screen
	s.Clear()

	editor := app.config.Editor()
	width, height := s.Size()
	screenLayout := layout.Column(
		layout.FlexItemBox(layout.EmptyBox, layout.Max(layout.Rel(1)), layout.Row(
			layout.FlexItemBox(app.lineNumberBox, layout.Exact(layout.Abs(max(editor.LineNumberWidth, 1))), nil),
			layout.FlexItemBox(app.bufferBox, layout.Max(layout.Rel(1)), nil),
		)),
		layout.FlexItemBox(app.statusLineBox, layout.Exact(layout.Abs(1)), nil),
	)
	screenLayout.StartLayouting(width, height)

	if app.mode == commandMode {
		s.ShowCursor(len([]rune(app.promptText())), height-1)
	} else {
		area := app.bufferArea
		line := app.buf.Line(app.cursor.row)
		x := area.Origin.X + cellsBefore(line, app.cursor.col, app.tabWidth())
		s.ShowCursor(x, area.Origin.Y+app.cursor.row-app.top)
	}
	s.Show()
}

// scroll moves the first visible row so the cursor stays on screen.
func (app *Application) scroll(height int) {
	if app.cursor.row < app.top {
		app.top = app.cursor.row
	}
	if height > 0 && app.cursor.row >= app.top+height {
		app.top = app.cursor.row - height + 1
	}
}

func (app *Application) lineNumberBox(dims layout.Dimensions) {
	s := app.screen
	xmin, ymin := dims.Origin.X, dims.Origin.Y
	pad := dims.Width - 1
	relative := app.config.Editor().RelativeLineNumbers

	app.scroll(dims.Height)
	lineCount := app.buf.LineCount()
	for i := 0; i < dims.Height && app.top+i < lineCount; i++ {
		row := app.top + i
		style, number := DefaultStyle, row+1
		if relative && row != app.cursor.row {
			style = LightStyle
			number = row - app.cursor.row
			if number < 0 {
				number = -number
			}
		}
		drawText(s, xmin, ymin+i, xmin+pad, ymin+i, style, fmt.Sprintf("%*d", pad, number))
	}
}

func (app *Application) bufferBox(dims layout.Dimensions) {
	app.bufferArea = dims
	app.scroll(dims.Height)

	var visible []rune
	row := 0
	for _, c := range app.buf.Runes() {
		if row >= app.top+dims.Height {
			break
		}
		if row >= app.top {
			visible = append(visible, c)
		}
		if c == '\n' {
			row++
		}
	}

	xmax, ymax := dims.Origin.X+dims.Width-1, dims.Origin.Y+dims.Height-1
	drawRunes(app.screen, dims.Origin.X, dims.Origin.Y, xmax, ymax, DefaultStyle, visible, app.tabWidth())
}

func (app *Application) statusLineBox(dims layout.Dimensions) {
	s := app.screen
	xmin, ymin, xmax := dims.Origin.X, dims.Origin.Y, dims.Origin.X+dims.Width-1

	for x := xmin; x <= xmax; x++ {
		s.SetContent(x, ymin, ' ', nil, StatusStyle)
	}

	if app.mode == commandMode {
		drawText(s, xmin, ymin, xmax, ymin, StatusStyle, app.promptText())
		return
	}

	name := app.buf.Path()
	if name == "" {
		name = "[No Name]"
	}
	if app.buf.Dirty() {
		name += " [+]"
	}
	status := fmt.Sprintf(" %s Mode | %s | %d:%d", app.mode, name, app.cursor.row+1, app.cursor.col+1)
	if app.message != "" {
		status += " | " + app.message
	}
	drawText(s, xmin, ymin, xmax, ymin, StatusStyle, status)
}

// cellWidth is the number of screen cells c takes when drawn at column x.
func cellWidth(c rune, x, tabWidth int) int {
	if c == '\t' {
		return tabWidth - x%tabWidth
	}
	return max(runewidth.RuneWidth(c), 1)
}

// cellsBefore is the screen column of rune col in line.
func cellsBefore(line []rune, col, tabWidth int) int {
	x := 0
	for i := 0; i < col && i < len(line); i++ {
		x += cellWidth(line[i], x, tabWidth)
	}
	return x
}

// columnAt is the rune under screen column x of line.
func columnAt(line []rune, x, tabWidth int) int {
	cells := 0
	for i, c := range line {
		cells += cellWidth(c, cells, tabWidth)
		if cells > x {
			return i
		}
	}
	return len(line)
}

func drawText(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style, text string) {
	drawRunes(s, x1, y1, x2, y2, style, []rune(text), 1)
}

// drawRunes writes text into the rectangle, starting a new row at every
// newline and clipping whatever does not fit.
func drawRunes(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style, text []rune, tabWidth int) {
	row, col := y1, x1
	for _, c := range text {
		if row > y2 {
			break
		}
		if c == '\n' {
			row++
			col = x1
			continue
		}

		width := cellWidth(c, col-x1, tabWidth)
		if col+width-1 <= x2 {
			if c == '\t' {
				for i := 0; i < width; i++ {
					s.SetContent(col+i, row, ' ', nil, style)
				}
			} else {
				s.SetContent(col, row, c, nil, style)
			}
		}
		col += width
	}
}
