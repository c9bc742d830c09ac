package mma

import (
	"github.com/born-ml/gpuir/internal/ir"
	"github.com/born-ml/gpuir/internal/layout"
)

// The matrix cores scatter accumulator elements across lanes in a fixed pattern.
// Stores of MMA results index physical storage through these tables, so they
// must match the hardware exactly.
var (
	// Shapes with two output blocks or M == 32.
	interleaved32 = [32]uint8{
		0, 4, 1, 5, 2, 6, 3, 7,
		8, 12, 9, 13, 10, 14, 11, 15,
		16, 20, 17, 21, 18, 22, 19, 23,
		24, 28, 25, 29, 26, 30, 27, 31,
	}
	interleaved32Size = [2]int{16, 2}

	blocked16     = [16]uint8{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15}
	blocked16Size = [2]int{4, 4}
)

func (d Descriptor) interleaved() bool {
	return d.blocks == 2 || d.m == 32
}

// OffsetMap returns the lane-to-element offsets of the accumulator.
func (d Descriptor) OffsetMap() []uint8 {
	if d.interleaved() {
		return append([]uint8(nil), interleaved32[:]...)
	}
	return append([]uint8(nil), blocked16[:]...)
}

// OffsetMapSize returns the (rows, cols) organization of OffsetMap, chosen so
// that the table can be indexed by thread id.
func (d Descriptor) OffsetMapSize() [2]int {
	if d.interleaved() {
		return interleaved32Size
	}
	return blocked16Size
}

// ThreadOffsetMapTypes returns the types used to materialize the offset map:
// a buffer in the private address space and a dense tensor of the same shape.
func (d Descriptor) ThreadOffsetMapTypes(elem ir.Type) (ir.MemRefType, ir.TensorType) {
	size := d.OffsetMapSize()
	shape := layout.Shape{size[0], size[1]}
	buffer := ir.NewMemRef(shape, elem).WithMemorySpace(ir.GPUPrivateAddressSpace)
	return buffer, ir.TensorType{Shape: shape, Elem: elem}
}

// OffsetMapAttr returns the offset map as a dense constant of the tensor type
// produced by ThreadOffsetMapTypes.
func (d Descriptor) OffsetMapAttr(elem ir.Type) ir.DenseIntAttr {
	_, tensorType := d.ThreadOffsetMapTypes(elem)
	offsets := d.OffsetMap()
	values := make([]int64, len(offsets))
	for i, o := range offsets {
		values[i] = int64(o)
	}
	return ir.DenseIntAttr{Type: tensorType, Values: values}
}
