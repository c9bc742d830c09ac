// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package value_test

import (
	"strings"
	"testing"

	"github.com/born-ml/gpuir/mma"
	"github.com/born-ml/gpuir/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGemmKernel builds a single-tile GEMM: load A and B from shared memory,
// multiply-accumulate into a private accumulator and store it to global memory.
func buildGemmKernel(t *testing.T, shape mma.Shape) value.ModuleOp {
	t.Helper()
	b := value.NewBuilder(value.NewContext())
	mod := value.BuildModule(b, value.UnknownLoc, "kernels")
	mod.SetInsertionPointToBody(b)
	value.BuildThreadOffsetMap(b, value.UnknownLoc, "offsets", shape)

	d := mma.Describe(shape)
	in := value.NewMemRef(value.Shape{d.M(), d.K()}, value.F16, value.MemorySpaceShared)
	frag := value.NewMemRef(value.Shape{d.InElementsPerThread(64)}, value.F16, value.MemorySpacePrivate)
	acc := value.NewMemRef(value.Shape{d.OutElementsPerThread(64)}, value.F32, value.MemorySpacePrivate)
	out := value.NewMemRef(value.Shape{d.M(), d.N()}, value.F32, value.MemorySpaceGlobal)

	fnType := value.NewFunctionType([]value.Type{in, in, frag, frag, acc, out}, nil)
	f := value.BuildFunc(b, value.UnknownLoc, "gemm", fnType, value.TargetGPU)
	args := f.EntryBlock().Arguments()

	b.SetInsertionPointToEnd(f.EntryBlock())
	value.BuildMMALoadSync(b, value.UnknownLoc, shape, mma.OperandA, args[0], args[2])
	value.BuildMMALoadSync(b, value.UnknownLoc, shape, mma.OperandB, args[1], args[3])
	value.BuildMMAComputeSync(b, value.UnknownLoc, shape, args[2], args[3], args[4])
	value.BuildMMAStoreSync(b, value.UnknownLoc, shape, args[4], args[5])
	value.BuildReturn(b, value.UnknownLoc)
	return mod
}

func TestGemmKernelVerifies(t *testing.T) {
	for _, shape := range mma.Shapes() {
		t.Run(shape.String(), func(t *testing.T) {
			mod := buildGemmKernel(t, shape)
			require.NoError(t, value.Verify(mod.Operation))
		})
	}
}

func TestGemmKernelPrints(t *testing.T) {
	mod := buildGemmKernel(t, mma.M32xN32xK8B1)
	var sb strings.Builder
	require.NoError(t, value.Print(&sb, mod.Operation))

	text := sb.String()
	for _, name := range []string{"value.module", "value.global", "value.func", "value.mma_load_sync", "value.mma_compute_sync", "value.mma_store_sync", "value.return", "value.module_terminator"} {
		assert.Contains(t, text, `"`+name+`"`)
	}
}

func TestReorderThroughPublicAPI(t *testing.T) {
	b := value.NewBuilder(value.NewContext())
	mod := value.BuildModule(b, value.UnknownLoc, "m")
	mod.SetInsertionPointToBody(b)
	src := value.NewMemRef(value.Shape{4, 8}, value.F32, value.MemorySpaceGlobal)
	f := value.BuildFunc(b, value.UnknownLoc, "transpose", value.NewFunctionType([]value.Type{src}, nil), value.TargetGPU)

	b.SetInsertionPointToEnd(f.EntryBlock())
	r, err := value.BuildReorder(b, value.UnknownLoc, f.EntryBlock().Argument(0), []int{1, 0})
	require.NoError(t, err)
	value.BuildReturn(b, value.UnknownLoc)

	result := r.Result(0).Type().(value.MemRefType)
	assert.Equal(t, value.Shape{8, 4}, result.Shape)
	require.NoError(t, value.Verify(mod.Operation))

	_, err = value.BuildReorder(b, value.UnknownLoc, f.EntryBlock().Argument(0), []int{1, 1})
	assert.Error(t, err)
}
