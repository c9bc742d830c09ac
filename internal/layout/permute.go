package layout

import (
	"slices"

	"github.com/pkg/errors"
)

// ValidatePermutation checks that perm is a bijection over [0, rank).
func ValidatePermutation(perm []int, rank int) error {
	if len(perm) != rank {
		return errors.Wrapf(ErrInvalidPermutation, "permutation %v has %d entries, view has rank %d", perm, len(perm), rank)
	}
	sorted := slices.Clone(perm)
	slices.Sort(sorted)
	for i, axis := range sorted {
		if axis < 0 || axis >= rank {
			return errors.Wrapf(ErrInvalidPermutation, "axis %d of %v is out of range for rank %d", axis, perm, rank)
		}
		if i > 0 && axis == sorted[i-1] {
			return errors.Wrapf(ErrInvalidPermutation, "axis %d repeated in %v", axis, perm)
		}
	}
	return nil
}

// InversePermutation returns inv such that inv[perm[i]] = i.
// perm must be a valid permutation.
func InversePermutation(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}

// Permute reinterprets a view with its dimensions reordered; no data is moved.
//
// perm maps new dimensions to old ones: the result's dimension i is the source's
// dimension perm[i]. The result addresses element (i0, ..., in) at the same storage
// location the source addressed the correspondingly reordered index.
//
// Example:
//
//	v := layout.Contiguous(layout.Shape{2, 3, 4})
//	t, _ := layout.Permute(v, []int{2, 0, 1}) // Shape: [4, 2, 3]
func Permute(v View, perm []int) (View, error) {
	if err := ValidatePermutation(perm, v.Rank()); err != nil {
		return View{}, err
	}

	newShape := make(Shape, len(perm))
	for i, p := range perm {
		newShape[i] = v.Shape[p]
	}
	forward := InversePermutation(perm)

	strides, offset, err := v.StridesAndOffset()
	if err != nil {
		return View{}, errors.WithMessagef(err, "permute %v by %v", []int(v.Shape), perm)
	}

	return View{
		Shape: newShape,
		Map:   Compose(StridedMap{Strides: strides, Offset: offset}, PermutationMap{Order: forward}),
	}, nil
}
