// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package value

import (
	"io"

	"github.com/born-ml/gpuir/internal/ir"
	"github.com/born-ml/gpuir/internal/layout"
	"github.com/born-ml/gpuir/internal/value"
)

// IR object model

// Context owns the registered dialects and operations.
type Context = ir.Context

// Builder creates operations at an insertion point.
type Builder = ir.Builder

// Location is a source position attached to operations and diagnostics.
type Location = ir.Location

// Operation is a generic IR operation.
type Operation = ir.Operation

// Block is a list of operations with typed arguments.
type Block = ir.Block

// Value is an SSA value: an operation result or a block argument.
type Value = ir.Value

// Type is the type of a Value.
type Type = ir.Type

// FunctionType is the signature of a function or lambda.
type FunctionType = ir.FunctionType

// MemRefType is a typed buffer in a memory space.
type MemRefType = ir.MemRefType

// Shape holds the static dimensions of a buffer.
type Shape = layout.Shape

// Diagnostics collects every verification failure of a module.
type Diagnostics = ir.Diagnostics

// UnknownLoc is the location used when no source position is known.
var UnknownLoc = ir.UnknownLoc

// Element types.
var (
	I1    = ir.I1
	I8    = ir.I8
	I32   = ir.I32
	I64   = ir.I64
	UI8   = ir.UI8
	F16   = ir.F16
	BF16  = ir.BF16
	F32   = ir.F32
	F64   = ir.F64
	Index = ir.Index
)

// NewContext returns a context with the value dialect registered.
func NewContext() *Context {
	ctx := ir.NewContext()
	value.Register(ctx)
	return ctx
}

// NewBuilder returns a builder without an insertion point.
func NewBuilder(ctx *Context) *Builder {
	return ir.NewBuilder(ctx)
}

// NewFunctionType creates a function signature.
func NewFunctionType(inputs, results []Type) FunctionType {
	return ir.NewFunctionType(inputs, results)
}

// NewMemRef creates a row-major buffer type in the given memory space.
func NewMemRef(shape Shape, elem Type, space MemorySpace) MemRefType {
	return ir.NewMemRef(shape, elem).WithMemorySpace(int(space))
}

// Verify runs every registered verifier under op and returns Diagnostics on failure.
func Verify(op *Operation) error {
	return ir.Verify(op)
}

// Print writes the generic textual form of op.
func Print(w io.Writer, op *Operation) error {
	return ir.Print(w, op)
}
