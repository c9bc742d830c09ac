package mma

import "github.com/pkg/errors"

// OperandType is the role of a matrix in an MMA instruction.
type OperandType int

// MMA operand roles.
const (
	OperandA OperandType = iota
	OperandB
	OperandAcc
)

// ErrUnknownOperand is returned for operand roles outside A, B and Acc.
var ErrUnknownOperand = errors.New("unknown MMA operand")

// Valid reports whether o is A, B or Acc.
func (o OperandType) Valid() bool {
	return o == OperandA || o == OperandB || o == OperandAcc
}

func (o OperandType) String() string {
	switch o {
	case OperandA:
		return "AOp"
	case OperandB:
		return "BOp"
	case OperandAcc:
		return "COp"
	default:
		return "unknown"
	}
}

// ParseOperandType parses the names produced by String.
func ParseOperandType(s string) (OperandType, error) {
	switch s {
	case "AOp":
		return OperandA, nil
	case "BOp":
		return OperandB, nil
	case "COp":
		return OperandAcc, nil
	default:
		return 0, errors.Wrapf(ErrUnknownOperand, "%q", s)
	}
}
