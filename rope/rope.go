// The rope package provides a binary Rope for editing UTF-8 text.
// Ropes allow long runs of text to be indexed, split and joined without
// copying the whole buffer.
//
// Structural operations (Len, Insert, Delete, Split) use byte offsets into
// the UTF-8 encoding. Index and iteration yield runes. The two are only
// interchangeable for ASCII text.
package rope

import (
	"strings"
	"unicode/utf8"
)

// MaxLeafSize is the largest number of bytes a leaf holds after FromString.
// Leaves grow past it under Insert; they are never re-split.
const MaxLeafSize = 8

type node interface {
	isNode()
}

type leaf struct {
	text string
}

// branch caches the byte length of its left subtree in leftLen.
type branch struct {
	left, right node
	leftLen     int
}

func (*leaf) isNode()   {}
func (*branch) isNode() {}

// A Rope is a tree of text leaves. The zero value is an empty rope.
//
// Each branch exclusively owns its children. Split and Concat hand subtrees
// over to their results, so the inputs must not be used afterwards.
type Rope struct {
	root node
}

// Return a new empty rope.
func New() Rope {
	return Rope{}
}

// Return a new balanced rope with the contents of string s.
func FromString(s string) Rope {
	return Rope{root: buildTree(chunk(s))}
}

// chunk cuts s into leaves of at most MaxLeafSize bytes. A cut never lands
// inside a UTF-8 sequence unless the sequence is longer than a leaf.
func chunk(s string) []node {
	var nodes []node
	for start := 0; start < len(s); {
		end := start + MaxLeafSize
		if end >= len(s) {
			end = len(s)
		} else {
			cut := end
			for cut > start && !utf8.RuneStart(s[cut]) {
				cut--
			}
			if cut > start {
				end = cut
			}
		}
		nodes = append(nodes, &leaf{text: s[start:end]})
		start = end
	}
	return nodes
}

func buildTree(nodes []node) node {
	switch len(nodes) {
	case 0:
		return &leaf{}
	case 1:
		return nodes[0]
	default:
		mid := len(nodes) / 2
		left := buildTree(nodes[:mid])
		right := buildTree(nodes[mid:])
		return &branch{left: left, right: right, leftLen: length(left)}
	}
}

// Return the length of the rope in bytes.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return length(r.root)
}

// length only walks the right spine; left subtrees are covered by leftLen.
func length(n node) int {
	total := 0
	for {
		switch v := n.(type) {
		case *leaf:
			return total + len(v.text)
		case *branch:
			total += v.leftLen
			n = v.right
		}
	}
}

// Index returns the rune found by routing the byte offset i through the
// branches and then taking the i-th rune of the reached leaf. For ASCII text
// that is the i-th character. It returns false if i is out of range.
func (r Rope) Index(i int) (rune, bool) {
	if r.root == nil || i < 0 {
		return 0, false
	}
	n := r.root
	for {
		switch v := n.(type) {
		case *leaf:
			for _, c := range v.text {
				if i == 0 {
					return c, true
				}
				i--
			}
			return 0, false
		case *branch:
			if i < v.leftLen {
				n = v.left
			} else {
				i -= v.leftLen
				n = v.right
			}
		}
	}
}

// Return the contents of the rope as a string.
func (r Rope) String() string {
	var builder strings.Builder
	builder.Grow(r.Len())
	r.Walk(func(text string, _ int) {
		builder.WriteString(text)
	})
	return builder.String()
}

// Walk calls fn for every leaf in document order with the leaf's depth
// below the root.
func (r Rope) Walk(fn func(text string, depth int)) {
	if r.root != nil {
		walk(r.root, 0, fn)
	}
}

func walk(n node, depth int, fn func(string, int)) {
	switch v := n.(type) {
	case *leaf:
		fn(v.text, depth)
	case *branch:
		walk(v.left, depth+1, fn)
		walk(v.right, depth+1, fn)
	}
}

// Insert puts text at byte offset at. Offsets past the end append.
func (r *Rope) Insert(at int, text string) {
	if r.root == nil {
		r.root = &leaf{text: text}
		return
	}
	at = clamp(at, 0, r.Len())
	r.root = insert(r.root, at, text)
}

func insert(n node, at int, text string) node {
	switch v := n.(type) {
	case *leaf:
		if at >= len(v.text) {
			return &leaf{text: v.text + text}
		}
		return &leaf{text: v.text[:at] + text + v.text[at:]}
	case *branch:
		if at < v.leftLen {
			v.left = insert(v.left, at, text)
			v.leftLen += len(text)
		} else {
			v.right = insert(v.right, at-v.leftLen, text)
		}
		return v
	}
	panic("rope: unknown node type")
}

// Append adds text to the end of the rope.
func (r *Rope) Append(text string) {
	r.Insert(r.Len(), text)
}

// Delete removes the bytes in the inclusive range [start, end].
// Nothing happens if start > end; end is clamped to the rope's length.
func (r *Rope) Delete(start, end int) {
	end = min(end, r.Len()-1)
	if start > end {
		return
	}

	prefix, suffix := r.Split(end + 1)
	kept, _ := prefix.Split(start)
	*r = Concat(kept, suffix)
}

// Split returns the content before byte offset at and the content from at
// onwards. The offset is clamped to [0, Len()]. The receiver is left empty.
func (r *Rope) Split(at int) (Rope, Rope) {
	root := r.root
	r.root = nil
	if root == nil {
		return New(), New()
	}

	at = clamp(at, 0, length(root))
	left, right := split(root, at)
	return Rope{root: left}, Rope{root: right}
}

func split(n node, at int) (node, node) {
	switch v := n.(type) {
	case *leaf:
		return &leaf{text: v.text[:at]}, &leaf{text: v.text[at:]}
	case *branch:
		if at <= v.leftLen {
			left, carried := split(v.left, at)
			return left, &branch{left: carried, right: v.right, leftLen: v.leftLen - at}
		}
		carried, right := split(v.right, at-v.leftLen)
		return &branch{left: v.left, right: carried, leftLen: v.leftLen}, right
	}
	panic("rope: unknown node type")
}

// Concat joins a and b under a new branch. If either is empty the other is
// returned as is. The result is not rebalanced.
func Concat(a, b Rope) Rope {
	switch {
	case a.Len() == 0:
		return b
	case b.Len() == 0:
		return a
	}
	return Rope{root: &branch{left: a.root, right: b.root, leftLen: length(a.root)}}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
