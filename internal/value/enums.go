package value

import (
	"github.com/born-ml/gpuir/internal/ir"
	"github.com/pkg/errors"
)

// ExecutionTarget selects the device a function is compiled for.
type ExecutionTarget int

// Execution targets.
const (
	TargetCPU ExecutionTarget = iota
	TargetGPU
)

// ErrUnknownEnum is returned when parsing an enum value that does not exist.
var ErrUnknownEnum = errors.New("unknown enum value")

func (t ExecutionTarget) String() string {
	switch t {
	case TargetCPU:
		return "CPU"
	case TargetGPU:
		return "GPU"
	default:
		return "unknown"
	}
}

// ParseExecutionTarget parses "CPU" or "GPU".
func ParseExecutionTarget(s string) (ExecutionTarget, error) {
	switch s {
	case "CPU":
		return TargetCPU, nil
	case "GPU":
		return TargetGPU, nil
	default:
		return 0, errors.Wrapf(ErrUnknownEnum, "execution target %q", s)
	}
}

// MemorySpace is the memory a buffer lives in. Values are the GPU address space numbers.
type MemorySpace int

// Memory spaces.
const (
	MemorySpaceNone     MemorySpace = 0
	MemorySpaceGlobal   MemorySpace = ir.GPUGlobalAddressSpace
	MemorySpaceShared   MemorySpace = ir.GPUWorkgroupAddressSpace
	MemorySpaceConstant MemorySpace = 4
	MemorySpacePrivate  MemorySpace = ir.GPUPrivateAddressSpace
	MemorySpaceTensor   MemorySpace = 6
)

func (s MemorySpace) String() string {
	switch s {
	case MemorySpaceNone:
		return "None"
	case MemorySpaceGlobal:
		return "Global"
	case MemorySpaceShared:
		return "Shared"
	case MemorySpaceConstant:
		return "Constant"
	case MemorySpacePrivate:
		return "Private"
	case MemorySpaceTensor:
		return "Tensor"
	default:
		return "unknown"
	}
}

// SpaceOf returns the memory space of a memref type.
func SpaceOf(t ir.MemRefType) MemorySpace {
	return MemorySpace(t.MemorySpace)
}

// mmaAccessible reports whether MMA loads and stores may address memory space s.
func (s MemorySpace) mmaAccessible() bool {
	switch s {
	case MemorySpaceNone, MemorySpaceShared, MemorySpaceGlobal, MemorySpacePrivate, MemorySpaceTensor:
		return true
	default:
		return false
	}
}

// CmpOpPredicate selects the comparison of a value.cmp operation.
type CmpOpPredicate int

// Comparison predicates.
const (
	CmpEQ CmpOpPredicate = iota
	CmpNE
	CmpLT
	CmpLE
	CmpGT
	CmpGE
)

func (p CmpOpPredicate) String() string {
	switch p {
	case CmpEQ:
		return "EQ"
	case CmpNE:
		return "NE"
	case CmpLT:
		return "LT"
	case CmpLE:
		return "LE"
	case CmpGT:
		return "GT"
	case CmpGE:
		return "GE"
	default:
		return "unknown"
	}
}

// BinaryOpPredicate selects the arithmetic of a value.bin_op operation.
type BinaryOpPredicate int

// Binary predicates.
const (
	BinADD BinaryOpPredicate = iota
	BinSUB
	BinMUL
	BinDIV
	BinMOD
	BinLogicalAND
	BinLogicalOR
	BinMAX
	BinMIN
)

func (p BinaryOpPredicate) String() string {
	switch p {
	case BinADD:
		return "ADD"
	case BinSUB:
		return "SUB"
	case BinMUL:
		return "MUL"
	case BinDIV:
		return "DIV"
	case BinMOD:
		return "MOD"
	case BinLogicalAND:
		return "LOGICAL_AND"
	case BinLogicalOR:
		return "LOGICAL_OR"
	case BinMAX:
		return "MAX"
	case BinMIN:
		return "MIN"
	default:
		return "unknown"
	}
}

// UnaryOpPredicate selects the operation of a value.unary_op operation.
type UnaryOpPredicate int

// Unary predicates.
const (
	UnaryNOT UnaryOpPredicate = iota
)

func (p UnaryOpPredicate) String() string {
	if p == UnaryNOT {
		return "NOT"
	}
	return "unknown"
}
