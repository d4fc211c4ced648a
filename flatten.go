package texatlas

import "iter"

// Region is a leaf layer with its bounds in document pixel space (top-left
// origin).
type Region struct {
	Name   string
	Bounds Bounds
}

// flattenFrame is one pending group on the walk stack.
type flattenFrame struct {
	layers []Layer
	next   int
}

// Leaves yields every leaf layer of d exactly once, in pre-order
// depth-first order: siblings in slice order, a group's leaves before the
// group's following siblings. The walk keeps its own stack, so nesting depth
// does not grow the call stack.
func (d *Document) Leaves() iter.Seq[Region] {
	return func(yield func(Region) bool) {
		stack := []flattenFrame{{layers: d.Layers}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.layers) {
				stack = stack[:len(stack)-1]
				continue
			}
			l := &top.layers[top.next]
			top.next++
			if l.IsGroup() {
				stack = append(stack, flattenFrame{layers: l.Layers})
				continue
			}
			if !yield(Region{Name: l.Name, Bounds: l.Bounds}) {
				return
			}
		}
	}
}

// WalkLeaves calls fn for every leaf of d in the order of Leaves, passing the
// owning document alongside. The walk stops at the first error fn returns.
func (d *Document) WalkLeaves(fn func(doc *Document, r Region) error) error {
	for r := range d.Leaves() {
		if err := fn(d, r); err != nil {
			return err
		}
	}
	return nil
}

// LeafCount returns the number of leaves in d.
func (d *Document) LeafCount() int {
	n := 0
	for range d.Leaves() {
		n++
	}
	return n
}
