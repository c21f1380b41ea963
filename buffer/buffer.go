// Package buffer maps the editor's row and column positions onto a rope.
// Rows and columns are 0-based and counted in runes; the rope underneath is
// addressed in bytes.
package buffer

import (
	"os"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"ropedit/files"
	"ropedit/rope"
)

type Buffer struct {
	text  rope.Rope
	path  string
	dirty bool

	log *logrus.Logger
}

// New returns an empty buffer that will be saved to path.
func New(path string, log *logrus.Logger) *Buffer {
	return &Buffer{text: rope.New(), path: path, log: log}
}

// FromString returns an unsaved buffer holding text.
func FromString(text string, log *logrus.Logger) *Buffer {
	return &Buffer{text: rope.FromString(text), log: log}
}

// Open reads the file at path. A file that does not exist yet gives an
// empty buffer which is created on the first save.
func Open(path string, log *logrus.Logger) (*Buffer, error) {
	text, err := files.Read(path)
	if xerrors.Is(err, os.ErrNotExist) {
		log.WithField("path", path).Info("file does not exist, starting empty")
		return New(path, log), nil
	}
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{"path": path, "bytes": text.Len()}).Info("opened file")
	return &Buffer{text: text, path: path, log: log}, nil
}

func (b *Buffer) Path() string {
	return b.path
}

func (b *Buffer) SetPath(path string) {
	b.path = path
	b.dirty = true
}

func (b *Buffer) Dirty() bool {
	return b.dirty
}

// Save writes the buffer to its path.
func (b *Buffer) Save() error {
	if b.path == "" {
		return xerrors.New("buffer has no file name")
	}
	if err := files.Write(b.path, b.text.Reader()); err != nil {
		return err
	}

	b.dirty = false
	b.log.WithFields(logrus.Fields{"path": b.path, "bytes": b.text.Len()}).Info("wrote file")
	return nil
}

func (b *Buffer) String() string {
	return b.text.String()
}

func (b *Buffer) Runes() []rune {
	return b.text.Runes()
}

func (b *Buffer) Len() int {
	return b.text.Len()
}

func (b *Buffer) LineCount() int {
	return b.text.LineCount()
}

// Line returns row without its newline.
func (b *Buffer) Line(row int) []rune {
	line := b.text.Line(row + 1)
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	return line
}

func (b *Buffer) LineLen(row int) int {
	return len(b.Line(row))
}

// LastCharInRow is the column of the last rune in row, or -1 for an empty row.
func (b *Buffer) LastCharInRow(row int) (col int) {
	return b.LineLen(row) - 1
}

// OffsetOfLine returns the byte offset where row starts. Rows past the end
// map to the end of the text.
func (b *Buffer) OffsetOfLine(row int) int {
	return b.offset(row, 0)
}

// offset converts a position to a byte offset. A column past the end of its
// row lands before the row's newline.
func (b *Buffer) offset(row, col int) int {
	if row <= 0 && col <= 0 {
		return 0
	}

	offset, curRow, curCol := 0, 0, 0
	it := b.text.Iter()
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		if curRow == row && (curCol == col || c == '\n') {
			return offset
		}
		offset += utf8.RuneLen(c)
		if c == '\n' {
			curRow++
			curCol = 0
		} else {
			curCol++
		}
	}
	return offset
}

// InsertChar puts c at the given position.
func (b *Buffer) InsertChar(row, col int, c rune) {
	at := b.offset(row, col)
	b.text.Insert(at, string(c))
	b.dirty = true
	b.log.WithFields(logrus.Fields{"row": row, "col": col, "offset": at}).Debugf("insert %q", c)
}

// AppendChar adds c at the end of the text.
func (b *Buffer) AppendChar(c rune) {
	b.text.Append(string(c))
	b.dirty = true
}

// DeleteAt removes the rune before the given position, joining row with the
// previous one at column 0. It returns where the cursor ends up.
func (b *Buffer) DeleteAt(row, col int) (newRow, newCol int) {
	if row <= 0 && col <= 0 {
		return 0, 0
	}
	col = min(col, b.LineLen(row))

	if col == 0 {
		newRow, newCol = row-1, b.LineLen(row-1)
	} else {
		newRow, newCol = row, col-1
	}

	start := b.offset(newRow, newCol)
	end := b.offset(row, col)
	if start >= end {
		return row, col
	}
	b.text.Delete(start, end-1)
	b.dirty = true
	b.log.WithFields(logrus.Fields{"row": row, "col": col, "start": start, "end": end - 1}).Debug("delete")
	return newRow, newCol
}
