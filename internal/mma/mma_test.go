package mma

import (
	"testing"

	"github.com/born-ml/gpuir/internal/ir"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeAllShapes(t *testing.T) {
	tests := []struct {
		shape            Shape
		m, n, k, blocks  int
		interleavedTable bool
	}{
		{M64xN64xK1B4, 64, 64, 1, 4, false},
		{M64xN64xK1B2, 64, 64, 1, 2, true},
		{M64xN64xK2B4, 64, 64, 2, 4, false},
		{M64xN64xK2B2, 64, 64, 2, 2, true},
		{M64xN64xK4B4, 64, 64, 4, 4, false},
		{M64xN64xK4B2, 64, 64, 4, 2, true},
		{M32xN32xK2B1, 32, 32, 2, 1, true},
		{M32xN32xK4B1, 32, 32, 4, 1, true},
		{M32xN32xK8B1, 32, 32, 8, 1, true},
		{M16xN16xK4B1, 16, 16, 4, 1, false},
		{M16xN16xK8B1, 16, 16, 8, 1, false},
		{M16xN16xK16B1, 16, 16, 16, 1, false},
		{M32xN8xK16B1, 32, 8, 16, 1, true},
		{M8xN32xK16B1, 8, 32, 16, 1, false},
	}
	require.Len(t, tests, len(Shapes()))

	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			d := Describe(tt.shape)
			assert.Equal(t, tt.shape, d.ShapeTag())
			assert.Equal(t, tt.m, d.M())
			assert.Equal(t, tt.n, d.N())
			assert.Equal(t, tt.k, d.K())
			assert.Equal(t, tt.blocks, d.Blocks())

			for _, warp := range []int{32, 64} {
				assert.Equal(t, tt.m*tt.k/warp, d.InElementsPerThread(warp))
				assert.Equal(t, tt.m*tt.n/warp, d.OutElementsPerThread(warp))
			}

			assert.Equal(t, []int{tt.m, tt.k}, d.OperandShape(OperandA))
			assert.Equal(t, []int{tt.k, tt.n}, d.OperandShape(OperandB))
			assert.Equal(t, []int{tt.m, tt.n}, d.OperandShape(OperandAcc))
			assert.Nil(t, d.OperandShape(OperandType(7)))

			size := d.OffsetMapSize()
			assert.Len(t, d.OffsetMap(), size[0]*size[1])
			if tt.interleavedTable {
				assert.Equal(t, [2]int{16, 2}, size)
			} else {
				assert.Equal(t, [2]int{4, 4}, size)
			}
		})
	}
}

func TestOffsetMapValues(t *testing.T) {
	assert.Equal(t,
		[]uint8{0, 4, 1, 5, 2, 6, 3, 7, 8, 12, 9, 13, 10, 14, 11, 15, 16, 20, 17, 21, 18, 22, 19, 23, 24, 28, 25, 29, 26, 30, 27, 31},
		Describe(M32xN32xK8B1).OffsetMap())
	assert.Equal(t,
		[]uint8{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15},
		Describe(M16xN16xK16B1).OffsetMap())
}

func TestOffsetMapIsPermutation(t *testing.T) {
	for _, s := range Shapes() {
		offsets := Describe(s).OffsetMap()
		seen := make(map[uint8]bool, len(offsets))
		for _, o := range offsets {
			assert.Less(t, int(o), len(offsets), "%s", s)
			assert.False(t, seen[o], "%s repeats offset %d", s, o)
			seen[o] = true
		}
	}
}

func TestOffsetMapReturnsCopy(t *testing.T) {
	d := Describe(M64xN64xK1B4)
	offsets := d.OffsetMap()
	offsets[0] = 99
	assert.Equal(t, uint8(0), d.OffsetMap()[0])
}

func TestThreadOffsetMapTypes(t *testing.T) {
	buffer, tensorType := Describe(M64xN64xK4B2).ThreadOffsetMapTypes(ir.UI8)

	assert.Equal(t, "memref<16x2xui8, 5>", buffer.String())
	assert.Equal(t, ir.GPUPrivateAddressSpace, buffer.MemorySpace)
	assert.Equal(t, "tensor<16x2xui8>", tensorType.String())

	attr := Describe(M16xN16xK4B1).OffsetMapAttr(ir.I32)
	assert.Len(t, attr.Values, 16)
	assert.Equal(t, int64(4), attr.Values[1])
	assert.Equal(t, "tensor<4x4xi32>", attr.Type.String())
}

func TestDescribeInvalidShapePanics(t *testing.T) {
	assert.Panics(t, func() { Describe(Shape(42)) })
	assert.Panics(t, func() { Describe(Shape(-1)) })

	_, err := Lookup(Shape(42))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownShape))
}

func TestParseShape(t *testing.T) {
	for _, s := range Shapes() {
		got, err := ParseShape(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseShape("M128xN128xK1_B1")
	assert.True(t, errors.Is(err, ErrUnknownShape))
}

func TestParseOperandType(t *testing.T) {
	for _, o := range []OperandType{OperandA, OperandB, OperandAcc} {
		got, err := ParseOperandType(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
		assert.True(t, o.Valid())
	}
	assert.False(t, OperandType(3).Valid())
	_, err := ParseOperandType("DOp")
	assert.True(t, errors.Is(err, ErrUnknownOperand))
}
