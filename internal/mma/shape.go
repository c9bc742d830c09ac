// Package mma describes the warp-synchronous matrix-multiply-accumulate shapes
// supported by the GPU backends and the per-thread layout of their results.
package mma

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Shape identifies one hardware MMA configuration: M×N×K per instruction and
// the number of blocks the output is split into.
type Shape int

// Supported MMA shapes.
const (
	M64xN64xK1B4 Shape = iota
	M64xN64xK1B2
	M64xN64xK2B4
	M64xN64xK2B2
	M64xN64xK4B4
	M64xN64xK4B2
	M32xN32xK2B1
	M32xN32xK4B1
	M32xN32xK8B1
	M16xN16xK4B1
	M16xN16xK8B1
	M16xN16xK16B1
	M32xN8xK16B1
	M8xN32xK16B1

	numShapes
)

// ErrUnknownShape is returned when a shape name or value is not in the catalog.
var ErrUnknownShape = errors.New("unknown MMA shape")

var catalog = [numShapes]Descriptor{
	M64xN64xK1B4:  {shape: M64xN64xK1B4, m: 64, n: 64, k: 1, blocks: 4, name: "M64xN64xK1_B4"},
	M64xN64xK1B2:  {shape: M64xN64xK1B2, m: 64, n: 64, k: 1, blocks: 2, name: "M64xN64xK1_B2"},
	M64xN64xK2B4:  {shape: M64xN64xK2B4, m: 64, n: 64, k: 2, blocks: 4, name: "M64xN64xK2_B4"},
	M64xN64xK2B2:  {shape: M64xN64xK2B2, m: 64, n: 64, k: 2, blocks: 2, name: "M64xN64xK2_B2"},
	M64xN64xK4B4:  {shape: M64xN64xK4B4, m: 64, n: 64, k: 4, blocks: 4, name: "M64xN64xK4_B4"},
	M64xN64xK4B2:  {shape: M64xN64xK4B2, m: 64, n: 64, k: 4, blocks: 2, name: "M64xN64xK4_B2"},
	M32xN32xK2B1:  {shape: M32xN32xK2B1, m: 32, n: 32, k: 2, blocks: 1, name: "M32xN32xK2_B1"},
	M32xN32xK4B1:  {shape: M32xN32xK4B1, m: 32, n: 32, k: 4, blocks: 1, name: "M32xN32xK4_B1"},
	M32xN32xK8B1:  {shape: M32xN32xK8B1, m: 32, n: 32, k: 8, blocks: 1, name: "M32xN32xK8_B1"},
	M16xN16xK4B1:  {shape: M16xN16xK4B1, m: 16, n: 16, k: 4, blocks: 1, name: "M16xN16xK4_B1"},
	M16xN16xK8B1:  {shape: M16xN16xK8B1, m: 16, n: 16, k: 8, blocks: 1, name: "M16xN16xK8_B1"},
	M16xN16xK16B1: {shape: M16xN16xK16B1, m: 16, n: 16, k: 16, blocks: 1, name: "M16xN16xK16_B1"},
	M32xN8xK16B1:  {shape: M32xN8xK16B1, m: 32, n: 8, k: 16, blocks: 1, name: "M32xN8xK16_B1"},
	M8xN32xK16B1:  {shape: M8xN32xK16B1, m: 8, n: 32, k: 16, blocks: 1, name: "M8xN32xK16_B1"},
}

// Valid reports whether s is in the catalog.
func (s Shape) Valid() bool {
	return s >= 0 && s < numShapes
}

func (s Shape) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return catalog[s].name
}

// Shapes returns every supported shape in declaration order.
func Shapes() []Shape {
	out := make([]Shape, numShapes)
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

// ParseShape returns the shape named like "M32xN32xK8_B1".
func ParseShape(name string) (Shape, error) {
	for i := range catalog {
		if catalog[i].name == name {
			return catalog[i].shape, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownShape, "%q", name)
}

// Descriptor holds the geometry of an MMA shape. It is immutable.
type Descriptor struct {
	shape   Shape
	m, n, k int
	blocks  int
	name    string
}

// Describe returns the descriptor of s. s must come from the catalog; anything
// else means an earlier stage produced a corrupt shape, and Describe panics.
func Describe(s Shape) Descriptor {
	if !s.Valid() {
		exceptions.Panicf("invalid MMA shape %d", int(s))
	}
	return catalog[s]
}

// Lookup is Describe for values crossing an untrusted boundary, such as
// deserialized attributes.
func Lookup(s Shape) (Descriptor, error) {
	if !s.Valid() {
		return Descriptor{}, errors.Wrapf(ErrUnknownShape, "value %d", int(s))
	}
	return catalog[s], nil
}

// ShapeTag returns the shape the descriptor was derived from.
func (d Descriptor) ShapeTag() Shape { return d.shape }

// M returns the number of rows of A and of the accumulator.
func (d Descriptor) M() int { return d.m }

// N returns the number of columns of B and of the accumulator.
func (d Descriptor) N() int { return d.n }

// K returns the reduction depth of one instruction.
func (d Descriptor) K() int { return d.k }

// Blocks returns the number of output blocks.
func (d Descriptor) Blocks() int { return d.blocks }

// InElementsPerThread returns how many A (or B) elements each lane holds.
func (d Descriptor) InElementsPerThread(warpSize int) int {
	return d.m * d.k / warpSize
}

// OutElementsPerThread returns how many accumulator elements each lane holds.
func (d Descriptor) OutElementsPerThread(warpSize int) int {
	return d.m * d.n / warpSize
}

// OperandShape returns the 2-D shape of an operand: A is M×K, B is K×N and
// the accumulator is M×N. It returns nil for an invalid operand.
func (d Descriptor) OperandShape(operand OperandType) []int {
	switch operand {
	case OperandA:
		return []int{d.m, d.k}
	case OperandB:
		return []int{d.k, d.n}
	case OperandAcc:
		return []int{d.m, d.n}
	default:
		return nil
	}
}
