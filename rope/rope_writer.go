package rope

import "strings"

// A Writer builds a rope from everything written to it. The text is
// collected as written and turned into a single balanced tree by Rope, so
// a rope read in many writes is as shallow as FromString on the same text.
// Chunking happens on the whole text, so a UTF-8 sequence cut in half by a
// write boundary never ends up split across leaves.
type Writer struct {
	text strings.Builder
}

func NewWriter() *Writer {
	return &Writer{}
}

func (writer *Writer) Write(p []byte) (n int, err error) {
	return writer.text.Write(p)
}

func (writer *Writer) WriteString(s string) (n int, err error) {
	return writer.text.WriteString(s)
}

// Rope hands over the rope built so far and resets the writer.
func (writer *Writer) Rope() Rope {
	r := FromString(writer.text.String())
	writer.text.Reset()
	return r
}
