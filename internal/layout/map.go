package layout

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrNotStrided         = errors.New("layout is not expressible as a strided linear form")
	ErrInvalidPermutation = errors.New("invalid permutation")
	ErrRankMismatch       = errors.New("rank mismatch")
	ErrIndexOutOfBounds   = errors.New("index out of bounds")
	ErrInvalidShape       = errors.New("invalid shape")
)

// Map is an addressing function from a logical multi-index to a linear storage offset,
// or, for permutation maps, to another multi-index of the same rank.
type Map interface {
	// Rank is the number of input dimensions.
	Rank() int
	// String renders the map in affine notation.
	String() string
}

// LinearMap is a Map producing a single storage offset.
type LinearMap interface {
	Map
	// Apply returns the linear offset for index. len(index) must equal Rank().
	Apply(index []int) int
}

// StridedMap addresses storage as offset + Σ strides[i]*index[i].
type StridedMap struct {
	Strides []int
	Offset  int
}

// Rank implements Map.
func (m StridedMap) Rank() int { return len(m.Strides) }

// Apply implements LinearMap.
func (m StridedMap) Apply(index []int) int {
	addr := m.Offset
	for i, stride := range m.Strides {
		addr += stride * index[i]
	}
	return addr
}

func (m StridedMap) String() string {
	terms := make([]string, 0, len(m.Strides)+1)
	if m.Offset != 0 || len(m.Strides) == 0 {
		terms = append(terms, fmt.Sprint(m.Offset))
	}
	for i, stride := range m.Strides {
		terms = append(terms, fmt.Sprintf("d%d * %d", i, stride))
	}
	return fmt.Sprintf("(%s) -> (%s)", dimList(len(m.Strides)), strings.Join(terms, " + "))
}

// PermutationMap reorders a multi-index: result[j] = index[Order[j]].
type PermutationMap struct {
	Order []int
}

// Rank implements Map.
func (m PermutationMap) Rank() int { return len(m.Order) }

// Permute returns the reordered index.
func (m PermutationMap) Permute(index []int) []int {
	out := make([]int, len(m.Order))
	for j, src := range m.Order {
		out[j] = index[src]
	}
	return out
}

func (m PermutationMap) String() string {
	results := make([]string, len(m.Order))
	for j, src := range m.Order {
		results[j] = fmt.Sprintf("d%d", src)
	}
	return fmt.Sprintf("(%s) -> (%s)", dimList(len(m.Order)), strings.Join(results, ", "))
}

// ComposedMap applies Inner to the index first and then Outer.
type ComposedMap struct {
	Outer LinearMap
	Inner PermutationMap
}

// Compose returns outer ∘ inner.
func Compose(outer LinearMap, inner PermutationMap) ComposedMap {
	return ComposedMap{Outer: outer, Inner: inner}
}

// Rank implements Map.
func (m ComposedMap) Rank() int { return m.Inner.Rank() }

// Apply implements LinearMap.
func (m ComposedMap) Apply(index []int) int {
	return m.Outer.Apply(m.Inner.Permute(index))
}

func (m ComposedMap) String() string {
	return fmt.Sprintf("%s o %s", m.Outer, m.Inner)
}

// Strided resolves a linear map to its strided form. Composition of a permutation
// with a strided map is still strided; opaque maps are not.
func Strided(m LinearMap) (StridedMap, error) {
	switch m := m.(type) {
	case StridedMap:
		return StridedMap{Strides: append([]int(nil), m.Strides...), Offset: m.Offset}, nil
	case ComposedMap:
		outer, err := Strided(m.Outer)
		if err != nil {
			return StridedMap{}, err
		}
		if outer.Rank() != m.Inner.Rank() {
			return StridedMap{}, errors.Wrapf(ErrRankMismatch, "composing rank-%d map with rank-%d permutation",
				outer.Rank(), m.Inner.Rank())
		}
		// Input dim i feeds outer dim j wherever Order[j] == i.
		strides := make([]int, m.Inner.Rank())
		for j, src := range m.Inner.Order {
			strides[src] += outer.Strides[j]
		}
		return StridedMap{Strides: strides, Offset: outer.Offset}, nil
	default:
		return StridedMap{}, errors.Wrapf(ErrNotStrided, "%s", m)
	}
}

func dimList(rank int) string {
	dims := make([]string, rank)
	for i := range dims {
		dims[i] = fmt.Sprintf("d%d", i)
	}
	return strings.Join(dims, ", ")
}
