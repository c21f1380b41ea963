// Package layout places rectangular boxes on the screen by splitting the
// available space along rows and columns.
package layout

import "sort"

type Point struct {
	X, Y int
}

// Resolve dimensions for a box
type Dimensions struct {
	Origin        Point // TL corner
	Width, Height int
}

// A LayoutBox draws itself into the dimensions it was given.
type LayoutBox func(Dimensions)

func EmptyBox(Dimensions) {}

type Direction int

const (
	Y Direction = iota
	X
)

type Flex struct {
	Dir   Direction // direction of the main axis
	Items []FlexItem
}

func Column(items ...FlexItem) *Flex {
	return &Flex{Dir: Y, Items: items}
}

func Row(items ...FlexItem) *Flex {
	return &Flex{Dir: X, Items: items}
}

// A FlexItem is a box and, optionally, a nested flex laid out inside the
// same dimensions after the box has been drawn.
type FlexItem struct {
	Box  LayoutBox
	Flex *Flex
	Size Constraint
}

func FlexItemBox(box LayoutBox, size Constraint, flex *Flex) FlexItem {
	return FlexItem{Box: box, Size: size, Flex: flex}
}

type Constraint struct {
	Min, Max Size
}

func Exact(size Size) Constraint {
	return Constraint{Min: size, Max: size}
}

func Max(size Size) Constraint {
	return Constraint{Min: Abs(0), Max: size}
}

type Size struct {
	abs int     // absolute size
	rel float64 // [0, 1]
}

func Abs(abs int) Size {
	return Size{abs: abs}
}

func Rel(rel float64) Size {
	return Size{rel: rel}
}

func (s Size) toAbs(size int) int {
	if s.abs != 0 {
		return s.abs
	}
	return int(s.rel * float64(size))
}

func (f *Flex) StartLayouting(width, height int) {
	f.Layout(Dimensions{Width: width, Height: height})
}

// Layout gives exact items their size first, then shares what is left
// equally among the others without exceeding their maximum. Items whose
// minimum is not met are skipped.
func (f *Flex) Layout(dim Dimensions) {
	total := dim.Height
	if f.Dir == X {
		total = dim.Width
	}
	sizes := f.distribute(total)

	orig := dim.Origin
	for i, item := range f.Items {
		size := sizes[i]
		if size <= 0 || size < item.Size.Min.toAbs(total) {
			continue
		}

		var d Dimensions
		if f.Dir == X {
			d = Dimensions{orig, size, dim.Height}
			orig.X += size
		} else {
			d = Dimensions{orig, dim.Width, size}
			orig.Y += size
		}

		if item.Box != nil {
			item.Box(d)
		}
		if item.Flex != nil {
			item.Flex.Layout(d)
		}
	}
}

func (f *Flex) distribute(total int) []int {
	sizes := make([]int, len(f.Items))
	remaining := total

	var flexible []int
	for i, item := range f.Items {
		if item.Size.Min != item.Size.Max {
			flexible = append(flexible, i)
			continue
		}
		sizes[i] = min(item.Size.Max.toAbs(total), remaining)
		remaining -= sizes[i]
	}

	// Smallest maximum first, so space an item cannot take moves on to the
	// larger ones.
	sort.SliceStable(flexible, func(a, b int) bool {
		return f.Items[flexible[a]].Size.Max.toAbs(total) < f.Items[flexible[b]].Size.Max.toAbs(total)
	})
	for k, i := range flexible {
		share := remaining / (len(flexible) - k)
		sizes[i] = min(share, f.Items[i].Size.Max.toAbs(total))
		remaining -= sizes[i]
	}
	return sizes
}
