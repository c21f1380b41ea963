package rope

import "unicode/utf8"

// Iterator yields the runes of a rope in document order. It keeps a stack
// of subtrees still to visit and a cursor into the leaf being read, so it
// can be paused between calls to Next.
//
// An Iterator is single pass. The rope must not be modified while one is in
// use.
type Iterator struct {
	nodes []node
	leaf  string
	pos   int
}

// Iter returns an iterator positioned before the first rune.
func (r Rope) Iter() *Iterator {
	it := &Iterator{}
	if r.root != nil {
		it.nodes = append(it.nodes, r.root)
	}
	return it
}

// Next returns the next rune, or false once the rope is exhausted.
func (it *Iterator) Next() (rune, bool) {
	for {
		if it.pos < len(it.leaf) {
			c, size := utf8.DecodeRuneInString(it.leaf[it.pos:])
			it.pos += size
			return c, true
		}

		if len(it.nodes) == 0 {
			it.leaf, it.pos = "", 0
			return 0, false
		}
		n := it.nodes[len(it.nodes)-1]
		it.nodes = it.nodes[:len(it.nodes)-1]

		switch v := n.(type) {
		case *leaf:
			it.leaf, it.pos = v.text, 0
		case *branch:
			it.nodes = append(it.nodes, v.right, v.left)
		}
	}
}

// Runes collects the whole rope.
func (r Rope) Runes() []rune {
	runes := make([]rune, 0, r.Len())
	it := r.Iter()
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		runes = append(runes, c)
	}
	return runes
}

// Line returns the runes of the 1-based line n, including its terminating
// newline if it has one. It is empty if the rope has fewer than n lines.
func (r Rope) Line(n int) []rune {
	var line []rune
	current := 1

	it := r.Iter()
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		if current == n {
			line = append(line, c)
		}
		if c == '\n' {
			if current == n {
				break
			}
			current++
		}
	}
	return line
}

// LineCount is the number of newlines plus one. An empty rope has one line.
func (r Rope) LineCount() int {
	count := 1
	it := r.Iter()
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		if c == '\n' {
			count++
		}
	}
	return count
}
