package ir

import (
	"fmt"
	"strings"

	"github.com/born-ml/gpuir/internal/layout"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/samber/lo"
)

// Type is the type of an SSA value or the payload of a TypeAttr.
type Type interface {
	String() string
	Equal(other Type) bool
}

// ShapedType is implemented by types with a static shape and an element type.
type ShapedType interface {
	Type
	ElementType() Type
	Dims() layout.Shape
}

// ScalarType is an integer, float or boolean element type.
type ScalarType struct {
	DType dtypes.DType
}

// Scalar returns the scalar type for dt.
func Scalar(dt dtypes.DType) ScalarType {
	return ScalarType{DType: dt}
}

// Common scalar types.
var (
	I1   = Scalar(dtypes.Bool)
	I8   = Scalar(dtypes.Int8)
	I16  = Scalar(dtypes.Int16)
	I32  = Scalar(dtypes.Int32)
	I64  = Scalar(dtypes.Int64)
	UI8  = Scalar(dtypes.Uint8)
	F16  = Scalar(dtypes.Float16)
	BF16 = Scalar(dtypes.BFloat16)
	F32  = Scalar(dtypes.Float32)
	F64  = Scalar(dtypes.Float64)
)

func (t ScalarType) String() string {
	switch t.DType {
	case dtypes.Bool:
		return "i1"
	case dtypes.Int8:
		return "i8"
	case dtypes.Int16:
		return "i16"
	case dtypes.Int32:
		return "i32"
	case dtypes.Int64:
		return "i64"
	case dtypes.Uint8:
		return "ui8"
	case dtypes.Uint16:
		return "ui16"
	case dtypes.Uint32:
		return "ui32"
	case dtypes.Uint64:
		return "ui64"
	case dtypes.Float16:
		return "f16"
	case dtypes.BFloat16:
		return "bf16"
	case dtypes.Float32:
		return "f32"
	case dtypes.Float64:
		return "f64"
	default:
		return strings.ToLower(t.DType.String())
	}
}

// Equal implements Type.
func (t ScalarType) Equal(other Type) bool {
	o, ok := other.(ScalarType)
	return ok && o.DType == t.DType
}

// IsFloat reports whether t is a floating point type.
func (t ScalarType) IsFloat() bool {
	return t.DType.IsFloat()
}

// IsInteger reports whether t is a signless or unsigned integer type, including i1.
func (t ScalarType) IsInteger() bool {
	return t.DType == dtypes.Bool || t.DType.IsInt()
}

// IndexType is the platform-sized integer used for subscripts.
type IndexType struct{}

// Index is the singleton index type.
var Index = IndexType{}

func (IndexType) String() string { return "index" }

// Equal implements Type.
func (IndexType) Equal(other Type) bool {
	_, ok := other.(IndexType)
	return ok
}

// IsIntOrIndex reports whether t is an integer scalar or index.
func IsIntOrIndex(t Type) bool {
	if _, ok := t.(IndexType); ok {
		return true
	}
	s, ok := t.(ScalarType)
	return ok && s.IsInteger()
}

// IsFloat reports whether t is a floating point scalar.
func IsFloat(t Type) bool {
	s, ok := t.(ScalarType)
	return ok && s.IsFloat()
}

// FunctionType is the signature of a callable.
type FunctionType struct {
	Inputs  []Type
	Results []Type
}

// NewFunctionType creates a function type, copying its arguments.
func NewFunctionType(inputs, results []Type) FunctionType {
	return FunctionType{
		Inputs:  append([]Type(nil), inputs...),
		Results: append([]Type(nil), results...),
	}
}

func (t FunctionType) String() string {
	return fmt.Sprintf("(%s) -> (%s)", joinTypes(t.Inputs), joinTypes(t.Results))
}

// Equal implements Type.
func (t FunctionType) Equal(other Type) bool {
	o, ok := other.(FunctionType)
	return ok && TypesEqual(t.Inputs, o.Inputs) && TypesEqual(t.Results, o.Results)
}

// MemRefType is a reference to a buffer with a static shape, an optional layout and a memory space.
type MemRefType struct {
	Shape       layout.Shape
	Elem        Type
	Layout      layout.LinearMap // nil means row-major
	MemorySpace int
}

// NewMemRef creates a row-major memref type in the default memory space.
func NewMemRef(shape layout.Shape, elem Type) MemRefType {
	return MemRefType{Shape: shape.Clone(), Elem: elem}
}

// ElementType implements ShapedType.
func (t MemRefType) ElementType() Type { return t.Elem }

// Dims implements ShapedType.
func (t MemRefType) Dims() layout.Shape { return t.Shape }

// View returns the addressing view of the memref.
func (t MemRefType) View() layout.View {
	return layout.View{Shape: t.Shape, Map: t.Layout}
}

// WithMemorySpace returns a copy of t in another memory space.
func (t MemRefType) WithMemorySpace(space int) MemRefType {
	t.MemorySpace = space
	return t
}

func (t MemRefType) String() string {
	var sb strings.Builder
	sb.WriteString("memref<")
	sb.WriteString(shapePrefix(t.Shape))
	sb.WriteString(t.Elem.String())
	if !t.View().IsIdentity() {
		sb.WriteString(", ")
		sb.WriteString(t.Layout.String())
	}
	if t.MemorySpace != 0 {
		fmt.Fprintf(&sb, ", %d", t.MemorySpace)
	}
	sb.WriteString(">")
	return sb.String()
}

// Equal implements Type.
func (t MemRefType) Equal(other Type) bool {
	o, ok := other.(MemRefType)
	if !ok || !t.Shape.Equal(o.Shape) || !t.Elem.Equal(o.Elem) || t.MemorySpace != o.MemorySpace {
		return false
	}
	if t.Layout == nil || o.Layout == nil {
		return t.Layout == nil && o.Layout == nil
	}
	return t.Layout.String() == o.Layout.String()
}

// TensorType is a ranked dense tensor value type.
type TensorType struct {
	Shape layout.Shape
	Elem  Type
}

// ElementType implements ShapedType.
func (t TensorType) ElementType() Type { return t.Elem }

// Dims implements ShapedType.
func (t TensorType) Dims() layout.Shape { return t.Shape }

func (t TensorType) String() string {
	return "tensor<" + shapePrefix(t.Shape) + t.Elem.String() + ">"
}

// Equal implements Type.
func (t TensorType) Equal(other Type) bool {
	o, ok := other.(TensorType)
	return ok && t.Shape.Equal(o.Shape) && t.Elem.Equal(o.Elem)
}

// VectorType is a fixed-size vector of scalars.
type VectorType struct {
	Shape layout.Shape
	Elem  Type
}

// ElementType implements ShapedType.
func (t VectorType) ElementType() Type { return t.Elem }

// Dims implements ShapedType.
func (t VectorType) Dims() layout.Shape { return t.Shape }

func (t VectorType) String() string {
	return "vector<" + shapePrefix(t.Shape) + t.Elem.String() + ">"
}

// Equal implements Type.
func (t VectorType) Equal(other Type) bool {
	o, ok := other.(VectorType)
	return ok && t.Shape.Equal(o.Shape) && t.Elem.Equal(o.Elem)
}

// TypesEqual compares two type lists position-wise.
func TypesEqual(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// ElementTypeOf returns the element type of a shaped type, or t itself otherwise.
func ElementTypeOf(t Type) Type {
	if s, ok := t.(ShapedType); ok {
		return s.ElementType()
	}
	return t
}

func joinTypes(types []Type) string {
	return strings.Join(lo.Map(types, func(t Type, _ int) string { return t.String() }), ", ")
}

func shapePrefix(shape layout.Shape) string {
	var sb strings.Builder
	for _, dim := range shape {
		fmt.Fprintf(&sb, "%dx", dim)
	}
	return sb.String()
}
