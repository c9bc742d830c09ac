package value

import (
	"github.com/born-ml/gpuir/internal/ir"
	"github.com/born-ml/gpuir/internal/layout"
	"github.com/gomlx/exceptions"
)

// GPUBlockCacheOp is a value.gpu_block_cache operation: the threads of a block
// cooperatively copy a tile of src into dest, each thread moving workPerThread
// elements in vectors of vecWidth.
type GPUBlockCacheOp struct {
	*ir.Operation
}

// BlockCacheConfig describes the tile copied by a GPUBlockCacheOp.
type BlockCacheConfig struct {
	TileShape     []int64
	WorkPerThread int64
	VecWidth      int64
	DstRowMajor   bool
}

// BuildGPUBlockCache creates a cooperative copy of a tile of src into dest.
func BuildGPUBlockCache(b *ir.Builder, loc ir.Location, src, dest *ir.Value, cfg BlockCacheConfig) GPUBlockCacheOp {
	state := ir.NewState(loc, GPUBlockCacheOpName)
	state.AddOperands(src, dest)
	state.AddAttribute(TileShapeAttrName, ir.IntArrayAttr(cfg.TileShape...))
	state.AddAttribute(WorkPerThreadAttrName, ir.IntAttr(cfg.WorkPerThread))
	state.AddAttribute(VecWidthAttrName, ir.IntAttr(cfg.VecWidth))
	if cfg.DstRowMajor {
		state.AddAttribute(DstRowMajorAttrName, ir.UnitAttr{})
	}
	return GPUBlockCacheOp{b.Create(state)}
}

// Config returns the tile configuration stored on the operation.
func (c GPUBlockCacheOp) Config() BlockCacheConfig {
	return BlockCacheConfig{
		TileShape:     c.GetAttrInts(TileShapeAttrName),
		WorkPerThread: c.GetAttrInt(WorkPerThreadAttrName, 0),
		VecWidth:      c.GetAttrInt(VecWidthAttrName, 0),
		DstRowMajor:   c.HasAttr(DstRowMajorAttrName),
	}
}

func verifyGPUBlockCache(op *ir.Operation) error {
	if op.NumOperands() != 2 {
		return op.EmitOpError("expects a source and a destination")
	}
	cfg := GPUBlockCacheOp{op}.Config()
	if len(cfg.TileShape) != 2 {
		return op.EmitOpError("tile shape must be 2-D, got %d dimensions", len(cfg.TileShape))
	}
	dest, ok := op.Operand(1).Type().(ir.MemRefType)
	if !ok {
		return op.EmitOpError("destination must be a memref, got %s", op.Operand(1).Type())
	}
	if dest.Shape.Rank() != 2 {
		return op.EmitOpError("destination must be 2-D, got %s", dest)
	}
	if cfg.WorkPerThread < 1 {
		return op.EmitOpError("work per thread must be at least 1, got %d", cfg.WorkPerThread)
	}
	if cfg.VecWidth < 1 {
		return op.EmitOpError("vector width must be at least 1, got %d", cfg.VecWidth)
	}
	if cfg.WorkPerThread%cfg.VecWidth != 0 {
		return op.EmitOpError("work per thread (%d) must be a multiple of the vector width (%d)", cfg.WorkPerThread, cfg.VecWidth)
	}

	// Shared memory destinations are allocated from the tile shape.
	if SpaceOf(dest) == MemorySpaceShared {
		tile := layout.Shape{int(cfg.TileShape[0]), int(cfg.TileShape[1])}
		if !cfg.DstRowMajor {
			tile = layout.Shape{tile[1], tile[0]}
		}
		if !dest.Shape.Equal(tile) {
			exceptions.Panicf("%s: shared memory destination %v does not match tile %v (row-major=%t)",
				op.Loc(), []int(dest.Shape), cfg.TileShape, cfg.DstRowMajor)
		}
	}
	return nil
}
