// Package files moves rope contents to and from disk as flat UTF-8.
package files

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/xerrors"

	"ropedit/rope"
)

// Read loads the file at path into a new rope.
func Read(path string) (rope.Rope, error) {
	file, err := os.Open(path)
	if err != nil {
		return rope.New(), xerrors.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	writer := rope.NewWriter()
	if _, err := io.Copy(writer, reader); err != nil {
		return rope.New(), xerrors.Errorf("read %s: %w", path, err)
	}

	return writer.Rope(), nil
}

// Write replaces the file at path with everything read from buffer.
func Write(path string, buffer io.Reader) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return xerrors.Errorf("open %s for writing: %w", path, err)
	}

	writer := bufio.NewWriter(file)
	if _, err := io.Copy(writer, buffer); err != nil {
		file.Close()
		return xerrors.Errorf("write %s: %w", path, err)
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return xerrors.Errorf("write %s: %w", path, err)
	}

	return file.Close()
}
