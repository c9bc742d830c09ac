package layout

import (
	"fmt"

	"github.com/pkg/errors"
)

// View is immutable metadata describing how a dense buffer is addressed.
// A nil Map means the row-major contiguous layout of Shape.
type View struct {
	Shape Shape
	Map   LinearMap
}

// NewView creates a strided view.
func NewView(shape Shape, strides []int, offset int) View {
	return View{
		Shape: shape.Clone(),
		Map:   StridedMap{Strides: append([]int(nil), strides...), Offset: offset},
	}
}

// Contiguous creates a row-major view with zero offset.
func Contiguous(shape Shape) View {
	return View{Shape: shape.Clone()}
}

// Rank returns the number of dimensions of the view.
func (v View) Rank() int {
	return len(v.Shape)
}

// IsIdentity reports whether the view uses the default row-major layout.
func (v View) IsIdentity() bool {
	return v.Map == nil
}

// StridesAndOffset resolves the view's addressing function to strides and a base offset.
func (v View) StridesAndOffset() ([]int, int, error) {
	if v.Map == nil {
		return v.Shape.ComputeStrides(), 0, nil
	}
	if v.Map.Rank() != v.Rank() {
		return nil, 0, errors.Wrapf(ErrRankMismatch, "view of shape %v has a rank-%d layout", []int(v.Shape), v.Map.Rank())
	}
	m, err := Strided(v.Map)
	if err != nil {
		return nil, 0, err
	}
	return m.Strides, m.Offset, nil
}

// Address returns the linear storage offset of a multi-index.
func (v View) Address(index []int) (int, error) {
	if len(index) != v.Rank() {
		return 0, errors.Wrapf(ErrRankMismatch, "index %v for view of rank %d", index, v.Rank())
	}
	for i, idx := range index {
		if idx < 0 || idx >= v.Shape[i] {
			return 0, errors.Wrapf(ErrIndexOutOfBounds, "index %v in dimension %d of shape %v", index, i, []int(v.Shape))
		}
	}
	if v.Map == nil {
		return StridedMap{Strides: v.Shape.ComputeStrides()}.Apply(index), nil
	}
	return v.Map.Apply(index), nil
}

func (v View) String() string {
	if v.Map == nil {
		return fmt.Sprintf("%v", []int(v.Shape))
	}
	return fmt.Sprintf("%v, %s", []int(v.Shape), v.Map)
}
