package buffer

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Stats describes the shape of the rope behind a buffer. Leaves grow under
// insertion and the tree is never rebalanced, so these drift from the
// balanced layout as the buffer is edited.
type Stats struct {
	Bytes, Lines  int
	Leaves, Depth int
	MeanLeaf      float64
	StdDevLeaf    float64
	LargestLeaf   int
}

func (b *Buffer) Stats() Stats {
	var sizes []float64
	s := Stats{Bytes: b.text.Len(), Lines: b.text.LineCount()}

	b.text.Walk(func(text string, depth int) {
		sizes = append(sizes, float64(len(text)))
		s.Depth = max(s.Depth, depth)
		s.LargestLeaf = max(s.LargestLeaf, len(text))
	})
	s.Leaves = len(sizes)

	switch len(sizes) {
	case 0:
	case 1:
		s.MeanLeaf = sizes[0]
	default:
		s.MeanLeaf, s.StdDevLeaf = stat.MeanStdDev(sizes, nil)
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("%d bytes, %d lines, %d leaves, depth %d, leaf size %.1f±%.1f (max %d)",
		s.Bytes, s.Lines, s.Leaves, s.Depth, s.MeanLeaf, s.StdDevLeaf, s.LargestLeaf)
}
