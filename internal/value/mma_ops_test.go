package value

import (
	"fmt"
	"testing"

	"github.com/born-ml/gpuir/internal/ir"
	"github.com/born-ml/gpuir/internal/layout"
	"github.com/born-ml/gpuir/internal/mma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tile(elem ir.Type, space MemorySpace, dims ...int) ir.MemRefType {
	return ir.NewMemRef(layout.Shape(dims), elem).WithMemorySpace(int(space))
}

func TestMMAComputeSyncElementTypes(t *testing.T) {
	acc := tile(ir.F32, MemorySpacePrivate, 16)

	t.Run("matching", func(t *testing.T) {
		b, mod, f := kernel(t, tile(ir.F16, MemorySpacePrivate, 4), tile(ir.F16, MemorySpacePrivate, 4), acc)
		args := f.EntryBlock().Arguments()
		c := BuildMMAComputeSync(b, ir.UnknownLoc, mma.M32xN32xK8B1, args[0], args[1], args[2], 0, 0, 0)
		assert.Equal(t, mma.M32xN32xK8B1, c.Shape())
		assert.True(t, c.Result(0).Type().Equal(acc))
		assert.NoError(t, ir.Verify(mod.Operation))
	})

	t.Run("mismatch", func(t *testing.T) {
		b, mod, f := kernel(t, tile(ir.F16, MemorySpacePrivate, 4), tile(ir.F32, MemorySpacePrivate, 4), acc)
		args := f.EntryBlock().Arguments()
		BuildMMAComputeSync(b, ir.UnknownLoc, mma.M32xN32xK8B1, args[0], args[1], args[2], 0, 0, 0)
		err := ir.Verify(mod.Operation)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "element type of operand A (f16) must match element type of operand B (f32)")
	})

	t.Run("invalid shape attribute", func(t *testing.T) {
		b, mod, f := kernel(t, tile(ir.F16, MemorySpacePrivate, 4), tile(ir.F16, MemorySpacePrivate, 4), acc)
		args := f.EntryBlock().Arguments()
		c := BuildMMAComputeSync(b, ir.UnknownLoc, mma.M16xN16xK4B1, args[0], args[1], args[2], 0, 0, 0)
		c.SetAttr(MMAShapeAttrName, ir.IntAttr(99))
		err := ir.Verify(mod.Operation)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown MMA shape")
	})

	assert.Panics(t, func() {
		b, _, f := kernel(t, acc, acc, acc)
		args := f.EntryBlock().Arguments()
		BuildMMAComputeSync(b, ir.UnknownLoc, mma.Shape(99), args[0], args[1], args[2], 0, 0, 0)
	})
}

func TestMMAFillSync(t *testing.T) {
	b, mod, f := kernel(t, ir.F32, ir.F16, tile(ir.F32, MemorySpacePrivate, 16))
	args := f.EntryBlock().Arguments()

	BuildMMAFillSync(b, ir.UnknownLoc, mma.M16xN16xK4B1, args[0], args[2])
	require.NoError(t, ir.Verify(mod.Operation))

	BuildMMAFillSync(b, ir.UnknownLoc, mma.M16xN16xK4B1, args[1], args[2])
	err := ir.Verify(mod.Operation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value type f16 must match destination element type f32")
}

var (
	mmaAllowedSpaces  = []MemorySpace{MemorySpaceNone, MemorySpaceGlobal, MemorySpaceShared, MemorySpacePrivate, MemorySpaceTensor}
	mmaRejectedSpaces = []MemorySpace{2, MemorySpaceConstant, 7, 99, -1}
)

func TestMMALoadSyncMemorySpaces(t *testing.T) {
	for _, space := range mmaAllowedSpaces {
		t.Run(space.String(), func(t *testing.T) {
			b, mod, f := kernel(t, tile(ir.F16, space, 64, 64), tile(ir.F16, MemorySpacePrivate, 4), ir.Index, ir.Index)
			args := f.EntryBlock().Arguments()
			l := BuildMMALoadSync(b, ir.UnknownLoc, mma.M64xN64xK4B2, mma.OperandA, args[0], args[1], args[2], args[3])
			assert.Equal(t, mma.OperandA, l.OperandType())
			assert.Equal(t, mma.M64xN64xK4B2, l.Shape())
			assert.NoError(t, ir.Verify(mod.Operation))
		})
	}
	for _, space := range mmaRejectedSpaces {
		t.Run(fmt.Sprintf("reject %d", int(space)), func(t *testing.T) {
			b, mod, f := kernel(t, tile(ir.F16, space, 64, 64), tile(ir.F16, MemorySpacePrivate, 4))
			args := f.EntryBlock().Arguments()
			BuildMMALoadSync(b, ir.UnknownLoc, mma.M64xN64xK4B2, mma.OperandB, args[0], args[1])
			err := ir.Verify(mod.Operation)
			require.Error(t, err)
			assert.Contains(t, err.Error(), fmt.Sprintf("source memory space must be one of None, Shared, Global, Private or Tensor, got %d", int(space)))
		})
	}
}

func TestMMALoadSyncOperandType(t *testing.T) {
	b, mod, f := kernel(t, tile(ir.F16, MemorySpaceShared, 64, 64), tile(ir.F16, MemorySpacePrivate, 4))
	args := f.EntryBlock().Arguments()
	for _, role := range []mma.OperandType{mma.OperandA, mma.OperandB, mma.OperandAcc} {
		BuildMMALoadSync(b, ir.UnknownLoc, mma.M64xN64xK4B2, role, args[0], args[1])
	}
	require.NoError(t, ir.Verify(mod.Operation))

	BuildMMALoadSync(b, ir.UnknownLoc, mma.M64xN64xK4B2, mma.OperandType(3), args[0], args[1])
	err := ir.Verify(mod.Operation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operand type must be AOp, BOp or COp, got 3")
}

func TestMMAStoreSyncMemorySpaces(t *testing.T) {
	for _, space := range mmaAllowedSpaces {
		b, mod, f := kernel(t, tile(ir.F32, MemorySpacePrivate, 16), tile(ir.F32, space, 64, 64))
		args := f.EntryBlock().Arguments()
		BuildMMAStoreSync(b, ir.UnknownLoc, mma.M64xN64xK1B4, args[0], args[1])
		assert.NoError(t, ir.Verify(mod.Operation), "space %s", space)
	}
	for _, space := range mmaRejectedSpaces {
		b, mod, f := kernel(t, tile(ir.F32, MemorySpacePrivate, 16), tile(ir.F32, space, 64, 64))
		args := f.EntryBlock().Arguments()
		BuildMMAStoreSync(b, ir.UnknownLoc, mma.M64xN64xK1B4, args[0], args[1])
		err := ir.Verify(mod.Operation)
		require.Error(t, err, "space %d", int(space))
		assert.Contains(t, err.Error(), "destination memory space must be one of")
	}
}

func TestGPUBlockCacheConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		dest    ir.MemRefType
		cfg     BlockCacheConfig
		wantErr string
	}{
		{"valid", tile(ir.F32, MemorySpaceGlobal, 32, 16), BlockCacheConfig{TileShape: []int64{32, 16}, WorkPerThread: 4, VecWidth: 2}, ""},
		{"work not multiple of vector", tile(ir.F32, MemorySpaceGlobal, 32, 16), BlockCacheConfig{TileShape: []int64{32, 16}, WorkPerThread: 3, VecWidth: 2},
			"work per thread (3) must be a multiple of the vector width (2)"},
		{"3-D tile", tile(ir.F32, MemorySpaceGlobal, 32, 16), BlockCacheConfig{TileShape: []int64{32, 16, 2}, WorkPerThread: 4, VecWidth: 2},
			"tile shape must be 2-D, got 3 dimensions"},
		{"1-D destination", tile(ir.F32, MemorySpaceGlobal, 512), BlockCacheConfig{TileShape: []int64{32, 16}, WorkPerThread: 4, VecWidth: 2},
			"destination must be 2-D"},
		{"zero work", tile(ir.F32, MemorySpaceGlobal, 32, 16), BlockCacheConfig{TileShape: []int64{32, 16}, WorkPerThread: 0, VecWidth: 2},
			"work per thread must be at least 1, got 0"},
		{"zero vector", tile(ir.F32, MemorySpaceGlobal, 32, 16), BlockCacheConfig{TileShape: []int64{32, 16}, WorkPerThread: 4, VecWidth: 0},
			"vector width must be at least 1, got 0"},
		{"shared row-major", tile(ir.F32, MemorySpaceShared, 32, 16), BlockCacheConfig{TileShape: []int64{32, 16}, WorkPerThread: 4, VecWidth: 4, DstRowMajor: true}, ""},
		{"shared column-major", tile(ir.F32, MemorySpaceShared, 16, 32), BlockCacheConfig{TileShape: []int64{32, 16}, WorkPerThread: 8, VecWidth: 4}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, mod, f := kernel(t, tile(ir.F32, MemorySpaceGlobal, 1024, 1024), tt.dest)
			args := f.EntryBlock().Arguments()
			c := BuildGPUBlockCache(b, ir.UnknownLoc, args[0], args[1], tt.cfg)
			assert.Equal(t, tt.cfg, c.Config())

			err := ir.Verify(mod.Operation)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGPUBlockCacheSharedShapeMismatchPanics(t *testing.T) {
	b, mod, f := kernel(t, tile(ir.F32, MemorySpaceGlobal, 1024, 1024), tile(ir.F32, MemorySpaceShared, 32, 16))
	args := f.EntryBlock().Arguments()
	BuildGPUBlockCache(b, ir.UnknownLoc, args[0], args[1], BlockCacheConfig{TileShape: []int64{32, 16}, WorkPerThread: 4, VecWidth: 2})

	assert.Panics(t, func() { _ = ir.Verify(mod.Operation) })
}
