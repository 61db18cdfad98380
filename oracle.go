package grover

import (
	"fmt"
	"sort"
)

/*
Oracle marks basis indices by flipping the sign of their amplitude. A circuit
would do this with a multi-controlled X onto an ancilla held in |->; the
simulation applies the resulting phase directly.
*/
type Oracle struct {
	size   int
	marked map[int]struct{}
}

/*
NewOracle builds an oracle over a basis of the given size. Duplicate indices
collapse into one mark. An empty set fails with ErrNoMarkedItem and a set
covering the whole basis fails with ErrAllItemsMarked.
*/
func NewOracle(size int, marked ...int) (*Oracle, error) {
	if len(marked) == 0 {
		return nil, ErrNoMarkedItem
	}

	set := make(map[int]struct{}, len(marked))
	for _, idx := range marked {
		if idx < 0 || idx >= size {
			return nil, fmt.Errorf("%w: marked index %d not in [0, %d)", ErrIndexOutOfRange, idx, size)
		}
		set[idx] = struct{}{}
	}

	if len(set) >= size {
		return nil, fmt.Errorf("%w: %d of %d", ErrAllItemsMarked, len(set), size)
	}

	return &Oracle{size: size, marked: set}, nil
}

// Count returns M, the number of distinct marked indices.
func (o *Oracle) Count() int {
	return len(o.marked)
}

func (o *Oracle) IsMarked(index int) bool {
	_, ok := o.marked[index]
	return ok
}

// Marked returns the marked indices in ascending order.
func (o *Oracle) Marked() []int {
	out := make([]int, 0, len(o.marked))
	for idx := range o.marked {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

/*
Apply negates the amplitude of every marked index. Magnitudes are untouched,
so the norm is preserved exactly.
*/
func (o *Oracle) Apply(sv *StateVector) error {
	if sv.Size() != o.size {
		return fmt.Errorf("%w: oracle built for %d, state has %d", ErrInvalidRegisterSize, o.size, sv.Size())
	}

	for idx := range o.marked {
		sv.Amplitudes[idx] = -sv.Amplitudes[idx]
	}

	return sv.Check()
}
