// Package layout describes how multi-dimensional views address linear storage.
package layout

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Shape holds the static dimensions of a view, outermost first.
type Shape []int

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the product of the dimensions; 1 for rank 0.
func (s Shape) NumElements() int {
	return lo.Reduce(s, func(n, dim, _ int) int { return n * dim }, 1)
}

// Validate returns ErrInvalidShape if a dimension is not positive.
func (s Shape) Validate() error {
	if i := slices.IndexFunc(s, func(dim int) bool { return dim <= 0 }); i >= 0 {
		return errors.Wrapf(ErrInvalidShape, "dimension %d is %d", i, s[i])
	}
	return nil
}

// Equal reports whether both shapes have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy that does not alias s.
func (s Shape) Clone() Shape {
	return append(make(Shape, 0, len(s)), s...)
}

// ComputeStrides returns the row-major strides of s: the innermost dimension
// has stride 1 and each outer stride spans the dimensions inside it.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	stride := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= s[i]
	}
	return strides
}

// Indices calls fn for every multi-index of the shape in row-major order.
// The slice passed to fn is reused between calls.
func (s Shape) Indices(fn func(index []int)) {
	if s.NumElements() == 0 {
		return
	}
	index := make([]int, len(s))
	for {
		fn(index)
		dim := len(s) - 1
		for dim >= 0 {
			index[dim]++
			if index[dim] < s[dim] {
				break
			}
			index[dim] = 0
			dim--
		}
		if dim < 0 {
			return
		}
	}
}
