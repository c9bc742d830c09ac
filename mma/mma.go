// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mma

import (
	"github.com/born-ml/gpuir/internal/mma"
)

// Shape identifies one MMA configuration.
type Shape = mma.Shape

// Supported shapes.
const (
	M64xN64xK1B4  Shape = mma.M64xN64xK1B4
	M64xN64xK1B2  Shape = mma.M64xN64xK1B2
	M64xN64xK2B4  Shape = mma.M64xN64xK2B4
	M64xN64xK2B2  Shape = mma.M64xN64xK2B2
	M64xN64xK4B4  Shape = mma.M64xN64xK4B4
	M64xN64xK4B2  Shape = mma.M64xN64xK4B2
	M32xN32xK2B1  Shape = mma.M32xN32xK2B1
	M32xN32xK4B1  Shape = mma.M32xN32xK4B1
	M32xN32xK8B1  Shape = mma.M32xN32xK8B1
	M16xN16xK4B1  Shape = mma.M16xN16xK4B1
	M16xN16xK8B1  Shape = mma.M16xN16xK8B1
	M16xN16xK16B1 Shape = mma.M16xN16xK16B1
	M32xN8xK16B1  Shape = mma.M32xN8xK16B1
	M8xN32xK16B1  Shape = mma.M8xN32xK16B1
)

// OperandType is the role of a matrix in an MMA instruction.
type OperandType = mma.OperandType

// Operand roles.
const (
	OperandA   OperandType = mma.OperandA
	OperandB   OperandType = mma.OperandB
	OperandAcc OperandType = mma.OperandAcc
)

// Descriptor holds the geometry of a shape.
type Descriptor = mma.Descriptor

// Errors returned for names or values outside the catalog.
var (
	ErrUnknownShape   = mma.ErrUnknownShape
	ErrUnknownOperand = mma.ErrUnknownOperand
)

// Shapes returns every supported shape.
func Shapes() []Shape {
	return mma.Shapes()
}

// ParseShape parses names such as "M32xN32xK8_B1".
func ParseShape(name string) (Shape, error) {
	return mma.ParseShape(name)
}

// ParseOperandType parses "AOp", "BOp" or "COp".
func ParseOperandType(s string) (OperandType, error) {
	return mma.ParseOperandType(s)
}

// Describe returns the descriptor of s and panics if s is not in the catalog.
func Describe(s Shape) Descriptor {
	return mma.Describe(s)
}

// Lookup returns the descriptor of s, or ErrUnknownShape.
func Lookup(s Shape) (Descriptor, error) {
	return mma.Lookup(s)
}
