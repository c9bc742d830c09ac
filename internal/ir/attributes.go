package ir

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Attribute is compile-time constant data attached to an operation.
type Attribute interface {
	String() string
}

// UnitAttr marks a boolean property by its presence.
type UnitAttr struct{}

func (UnitAttr) String() string { return "unit" }

// IntegerAttr is a typed integer constant.
type IntegerAttr struct {
	Value int64
	Type  Type
}

// IntAttr creates an i64 integer attribute.
func IntAttr(v int64) IntegerAttr {
	return IntegerAttr{Value: v, Type: I64}
}

func (a IntegerAttr) String() string {
	if a.Type == nil {
		return strconv.FormatInt(a.Value, 10)
	}
	return fmt.Sprintf("%d : %s", a.Value, a.Type)
}

// FloatAttr is a typed floating point constant.
type FloatAttr struct {
	Value float64
	Type  Type
}

func (a FloatAttr) String() string {
	s := strconv.FormatFloat(a.Value, 'e', -1, 64)
	if a.Type == nil {
		return s
	}
	return s + " : " + a.Type.String()
}

// StringAttr is a string constant.
type StringAttr string

func (a StringAttr) String() string { return strconv.Quote(string(a)) }

// SymbolRefAttr references a symbol by name.
type SymbolRefAttr string

func (a SymbolRefAttr) String() string { return "@" + string(a) }

// TypeAttr wraps a type.
type TypeAttr struct {
	Type Type
}

func (a TypeAttr) String() string {
	if a.Type == nil {
		return "<<null type>>"
	}
	return a.Type.String()
}

// ArrayAttr is an ordered list of attributes.
type ArrayAttr []Attribute

// IntArrayAttr creates an array of i64 attributes.
func IntArrayAttr(values ...int64) ArrayAttr {
	return lo.Map(values, func(v int64, _ int) Attribute { return IntAttr(v) })
}

func (a ArrayAttr) String() string {
	return "[" + strings.Join(lo.Map(a, func(e Attribute, _ int) string { return e.String() }), ", ") + "]"
}

// Ints converts an array of integer attributes. The second result is false
// if any element is not an IntegerAttr.
func (a ArrayAttr) Ints() ([]int64, bool) {
	out := make([]int64, len(a))
	for i, e := range a {
		ia, ok := e.(IntegerAttr)
		if !ok {
			return nil, false
		}
		out[i] = ia.Value
	}
	return out, true
}

// DictAttr is a dictionary of named attributes.
type DictAttr map[string]Attribute

func (a DictAttr) String() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = formatNamedAttr(k, a[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Clone returns a shallow copy of the dictionary.
func (a DictAttr) Clone() DictAttr {
	if a == nil {
		return nil
	}
	out := make(DictAttr, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// DenseIntAttr holds integer elements for a shaped type.
type DenseIntAttr struct {
	Type   ShapedType
	Values []int64
}

func (a DenseIntAttr) String() string {
	vals := lo.Map(a.Values, func(v int64, _ int) string { return strconv.FormatInt(v, 10) })
	return fmt.Sprintf("dense<[%s]> : %s", strings.Join(vals, ", "), a.Type)
}

func formatNamedAttr(name string, attr Attribute) string {
	if _, ok := attr.(UnitAttr); ok {
		return name
	}
	return name + " = " + attr.String()
}
