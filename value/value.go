// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package value

import (
	"github.com/born-ml/gpuir/internal/value"
	"github.com/born-ml/gpuir/mma"
)

// Enumerations

// ExecutionTarget selects where a function runs.
type ExecutionTarget = value.ExecutionTarget

// Execution targets.
const (
	TargetCPU ExecutionTarget = value.TargetCPU
	TargetGPU ExecutionTarget = value.TargetGPU
)

// MemorySpace is the address space of a buffer.
type MemorySpace = value.MemorySpace

// Memory spaces.
const (
	MemorySpaceNone     MemorySpace = value.MemorySpaceNone
	MemorySpaceGlobal   MemorySpace = value.MemorySpaceGlobal
	MemorySpaceShared   MemorySpace = value.MemorySpaceShared
	MemorySpaceConstant MemorySpace = value.MemorySpaceConstant
	MemorySpacePrivate  MemorySpace = value.MemorySpacePrivate
	MemorySpaceTensor   MemorySpace = value.MemorySpaceTensor
)

// BinaryOpPredicate selects the operation of a binary op.
type BinaryOpPredicate = value.BinaryOpPredicate

// Common binary predicates.
const (
	BinADD BinaryOpPredicate = value.BinADD
	BinSUB BinaryOpPredicate = value.BinSUB
	BinMUL BinaryOpPredicate = value.BinMUL
	BinDIV BinaryOpPredicate = value.BinDIV
	BinMAX BinaryOpPredicate = value.BinMAX
	BinMIN BinaryOpPredicate = value.BinMIN
)

// Operations

// ModuleOp is the top-level container of functions and globals.
type ModuleOp = value.ModuleOp

// FuncOp is a named function.
type FuncOp = value.FuncOp

// LambdaOp is a function nested in another function.
type LambdaOp = value.LambdaOp

// GlobalOp is a module-level buffer.
type GlobalOp = value.GlobalOp

// ReduceOp folds a buffer into an accumulator.
type ReduceOp = value.ReduceOp

// ReorderOp views a buffer with permuted dimensions.
type ReorderOp = value.ReorderOp

// ReduceBodyFn builds the combiner of a reduction.
type ReduceBodyFn = value.ReduceBodyFn

// MapBodyFn builds the per-element mapping of a map-reduce.
type MapBodyFn = value.MapBodyFn

// BlockCacheConfig configures a GPU block cache copy.
type BlockCacheConfig = value.BlockCacheConfig

// BuildModule creates a terminated, empty module.
func BuildModule(b *Builder, loc Location, name string) ModuleOp {
	return value.BuildModule(b, loc, name)
}

// BuildFunc creates a function with an entry block matching fnType.
func BuildFunc(b *Builder, loc Location, name string, fnType FunctionType, target ExecutionTarget) FuncOp {
	return value.BuildFunc(b, loc, name, fnType, target)
}

// BuildExternalFunc declares a function implemented elsewhere.
func BuildExternalFunc(b *Builder, loc Location, name string, fnType FunctionType, target ExecutionTarget) FuncOp {
	return value.BuildExternalFunc(b, loc, name, fnType, target)
}

// BuildLambda creates a nested function.
func BuildLambda(b *Builder, loc Location, name string, fnType FunctionType, target ExecutionTarget) LambdaOp {
	return value.BuildLambda(b, loc, name, fnType, target)
}

// BuildReturn terminates a function body.
func BuildReturn(b *Builder, loc Location, values ...*Value) *Operation {
	return value.BuildReturn(b, loc, values...)
}

// BuildCall calls the function or lambda named callee.
func BuildCall(b *Builder, loc Location, callee string, results []Type, args ...*Value) *Operation {
	return value.BuildCall(b, loc, callee, results, args...).Operation
}

// BuildBin creates a binary operation on operands of the same type.
func BuildBin(b *Builder, loc Location, pred BinaryOpPredicate, lhs, rhs *Value) *Operation {
	return value.BuildBin(b, loc, pred, lhs, rhs)
}

// BuildReduce creates a reduction whose combiner is built by body.
func BuildReduce(b *Builder, loc Location, input, init *Value, body ReduceBodyFn) (ReduceOp, error) {
	return value.BuildReduce(b, loc, input, init, body)
}

// BuildReorder views source with its dimensions permuted by order.
func BuildReorder(b *Builder, loc Location, source *Value, order []int) (ReorderOp, error) {
	return value.BuildReorder(b, loc, source, order)
}

// BuildGlobal creates a module-level buffer.
func BuildGlobal(b *Builder, loc Location, t MemRefType, isConstant bool, name string, space MemorySpace, isExternal bool) GlobalOp {
	return value.BuildGlobal(b, loc, t, isConstant, name, nil, int(space), isExternal)
}

// BuildThreadOffsetMap creates a constant private global holding the
// lane-to-element offsets of shape's accumulator.
func BuildThreadOffsetMap(b *Builder, loc Location, name string, shape mma.Shape) GlobalOp {
	d := mma.Describe(shape)
	buffer, _ := d.ThreadOffsetMapTypes(UI8)
	return value.BuildGlobal(b, loc, buffer, true, name, d.OffsetMapAttr(UI8), int(MemorySpacePrivate), false)
}

// BuildMMALoadSync loads one MMA operand from src into dest.
func BuildMMALoadSync(b *Builder, loc Location, shape mma.Shape, operand mma.OperandType, src, dest *Value, indices ...*Value) *Operation {
	return value.BuildMMALoadSync(b, loc, shape, operand, src, dest, indices...).Operation
}

// BuildMMAComputeSync multiplies A and B and accumulates into C.
func BuildMMAComputeSync(b *Builder, loc Location, shape mma.Shape, opA, opB, opC *Value) *Operation {
	return value.BuildMMAComputeSync(b, loc, shape, opA, opB, opC, 0, 0, 0).Operation
}

// BuildMMAStoreSync stores an accumulator into dest.
func BuildMMAStoreSync(b *Builder, loc Location, shape mma.Shape, src, dest *Value, indices ...*Value) *Operation {
	return value.BuildMMAStoreSync(b, loc, shape, src, dest, indices...)
}

// BuildGPUBlockCache copies a tile of src into dest.
func BuildGPUBlockCache(b *Builder, loc Location, src, dest *Value, cfg BlockCacheConfig) *Operation {
	return value.BuildGPUBlockCache(b, loc, src, dest, cfg).Operation
}
