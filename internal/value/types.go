package value

import "github.com/born-ml/gpuir/internal/ir"

const rangeKeyword = "range"

// RangeType is the type of loop ranges. It has no parameters and prints as !value.range.
type RangeType struct{}

var _ ir.Type = RangeType{}

func (RangeType) String() string { return "!" + Namespace + "." + rangeKeyword }

// Equal implements ir.Type.
func (RangeType) Equal(other ir.Type) bool {
	_, ok := other.(RangeType)
	return ok
}
