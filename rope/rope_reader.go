package rope

import "io"

// A Reader provides an implementation of io.Reader for ropes.
// It copies leaf text straight into the caller's buffer without building
// the full string first.
type Reader struct {
	nodes []node
	leaf  string
}

// Reader returns a Reader positioned at the start of the rope.
// The rope must not be modified while the Reader is in use.
func (r Rope) Reader() *Reader {
	reader := &Reader{}
	if r.root != nil {
		reader.nodes = append(reader.nodes, r.root)
	}
	return reader
}

// Read implements the standard Read interface:
// it reads data from the rope, populating p, and returns
// the number of bytes actually read.
func (reader *Reader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(reader.leaf) > 0 {
			c := copy(p[n:], reader.leaf)
			reader.leaf = reader.leaf[c:]
			n += c
			continue
		}

		if len(reader.nodes) == 0 {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		next := reader.nodes[len(reader.nodes)-1]
		reader.nodes = reader.nodes[:len(reader.nodes)-1]

		switch v := next.(type) {
		case *leaf:
			reader.leaf = v.text
		case *branch:
			reader.nodes = append(reader.nodes, v.right, v.left)
		}
	}
	return n, nil
}
