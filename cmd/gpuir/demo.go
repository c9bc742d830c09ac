package main

import (
	"github.com/born-ml/gpuir/internal/ir"
	"github.com/born-ml/gpuir/internal/layout"
	"github.com/born-ml/gpuir/internal/mma"
	"github.com/born-ml/gpuir/internal/target"
	"github.com/born-ml/gpuir/internal/value"
	"github.com/pkg/errors"
)

func buffer(s value.MemorySpace, elem ir.Type, dims ...int) ir.MemRefType {
	return ir.NewMemRef(layout.Shape(dims), elem).WithMemorySpace(int(s))
}

// buildGemm builds a module with one kernel computing a single MMA tile.
// Both operands are cached from global into shared memory, loaded into
// private fragments, multiplied and stored back; the kernel returns the
// squared sum of the thread's accumulator.
func buildGemm(cfg target.Config, shape mma.Shape) (value.ModuleOp, error) {
	d, err := mma.Lookup(shape)
	if err != nil {
		return value.ModuleOp{}, err
	}
	ctx := ir.NewContext()
	value.Register(ctx)
	b := ir.NewBuilder(ctx)
	loc := ir.Loc("demo", 1, 1)
	exec := cfg.ExecutionTarget()
	warp := cfg.WarpSize

	mod := value.BuildModule(b, loc, "gemm_"+shape.String())
	mod.SetInsertionPointToBody(b)

	offsets, _ := d.ThreadOffsetMapTypes(ir.UI8)
	global := value.BuildGlobal(b, loc, offsets, true, "thread_offsets", d.OffsetMapAttr(ir.UI8), ir.GPUPrivateAddressSpace, false)

	inputs := []ir.Type{
		buffer(value.MemorySpaceGlobal, ir.F16, d.M(), d.K()),
		buffer(value.MemorySpaceGlobal, ir.F16, d.N(), d.K()),
		buffer(value.MemorySpaceGlobal, ir.F32, d.M(), d.N()),
		ir.F32,
		buffer(value.MemorySpaceShared, ir.F16, d.M(), d.K()),
		buffer(value.MemorySpaceShared, ir.F16, d.N(), d.K()),
		buffer(value.MemorySpacePrivate, ir.F16, d.InElementsPerThread(warp)),
		buffer(value.MemorySpacePrivate, ir.F16, d.InElementsPerThread(warp)),
		buffer(value.MemorySpacePrivate, ir.F32, d.OutElementsPerThread(warp)),
	}
	f := value.BuildFunc(b, loc, "kernel", ir.NewFunctionType(inputs, []ir.Type{ir.F32}), exec)
	args := f.EntryBlock().Arguments()
	a, bt, c, init := args[0], args[1], args[2], args[3]
	tileA, tileB, fragA, fragB, acc := args[4], args[5], args[6], args[7], args[8]

	b.SetInsertionPointToEnd(f.EntryBlock())
	square := value.BuildLambda(b, loc, "square", ir.NewFunctionType([]ir.Type{ir.F32}, []ir.Type{ir.F32}), exec)
	lb := ir.NewBuilder(ctx)
	lb.SetInsertionPointToEnd(square.EntryBlock())
	x := square.EntryBlock().Argument(0)
	value.BuildReturn(lb, loc, value.BuildBin(lb, loc, value.BinMUL, x, x).Result(0))

	work := int64(d.K())
	value.BuildGPUBlockCache(b, loc, a, tileA, value.BlockCacheConfig{
		TileShape: []int64{int64(d.M()), int64(d.K())}, WorkPerThread: work, VecWidth: work, DstRowMajor: true,
	})
	value.BuildGPUBlockCache(b, loc, bt, tileB, value.BlockCacheConfig{
		TileShape: []int64{int64(d.N()), int64(d.K())}, WorkPerThread: work, VecWidth: work, DstRowMajor: true,
	})

	// B is cached N×K; the MMA reads it K×N.
	bView, err := value.BuildReorder(b, loc, tileB, []int{1, 0})
	if err != nil {
		return value.ModuleOp{}, errors.WithMessage(err, "transposing B")
	}

	value.BuildMMAFillSync(b, loc, shape, init, acc)
	value.BuildMMALoadSync(b, loc, shape, mma.OperandA, tileA, fragA)
	value.BuildMMALoadSync(b, loc, shape, mma.OperandB, bView.Result(0), fragB)
	value.BuildMMAComputeSync(b, loc, shape, fragA, fragB, acc, 0, 0, 0)
	value.BuildReferenceGlobal(b, loc, global)
	value.BuildMMAStoreSync(b, loc, shape, acc, c)

	sum, err := value.BuildReduce(b, loc, acc, init, func(b *ir.Builder, loc ir.Location, acc, elem *ir.Value) (*ir.Value, error) {
		return value.BuildBin(b, loc, value.BinADD, acc, elem).Result(0), nil
	})
	if err != nil {
		return value.ModuleOp{}, err
	}
	squared := value.BuildCall(b, loc, square.SymName(), []ir.Type{ir.F32}, sum.Result(0))
	value.BuildReturn(b, loc, squared.Result(0))
	return mod, nil
}
