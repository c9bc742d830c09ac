package value

import (
	"github.com/born-ml/gpuir/internal/ir"
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// ModuleOp is a value.module operation: a named symbol table holding functions and globals.
type ModuleOp struct {
	*ir.Operation
}

// BuildModule creates a module whose single body block ends with a
// value.module_terminator.
func BuildModule(b *ir.Builder, loc ir.Location, name string) ModuleOp {
	state := ir.NewState(loc, ModuleOpName)
	if name != "" {
		state.AddAttribute(ir.SymbolAttrName, ir.StringAttr(name))
	}
	body := ir.NewBlock()
	state.AddRegion().PushBack(body)
	op := b.Create(state)

	defer b.InsertionGuard()()
	b.SetInsertionPointToEnd(body)
	b.Create(ir.NewState(loc, ModuleTerminatorOpName))
	return ModuleOp{op}
}

// AsModule returns op as a ModuleOp if it is a value.module.
func AsModule(op *ir.Operation) (ModuleOp, bool) {
	if op == nil || op.Name() != ModuleOpName {
		return ModuleOp{}, false
	}
	return ModuleOp{op}, true
}

// SymName returns the module name, which may be empty.
func (m ModuleOp) SymName() string { return ir.SymbolName(m.Operation) }

// Body returns the single block of the module.
func (m ModuleOp) Body() *ir.Block { return m.Region(0).Front() }

// SetInsertionPointToBody makes b insert at the end of the module, before its terminator.
func (m ModuleOp) SetInsertionPointToBody(b *ir.Builder) {
	if term := m.Body().Terminator(); term != nil {
		b.SetInsertionPoint(term)
		return
	}
	b.SetInsertionPointToEnd(m.Body())
}

// SymbolTable indexes the symbols defined in the module body.
func (m ModuleOp) SymbolTable() *ir.SymbolTable { return ir.NewSymbolTable(m.Operation) }

// LookupFunc returns the function called name.
func (m ModuleOp) LookupFunc(name string) (FuncOp, bool) {
	return AsFunc(ir.LookupSymbolIn(m.Operation, name))
}

func verifyModule(op *ir.Operation) error {
	body := op.Region(0).Front()
	if body == nil {
		return op.EmitOpError("expects a body block")
	}
	if last := body.Back(); last == nil || last.Name() != ModuleTerminatorOpName {
		return op.EmitOpError("expects the body to end with '%s'", ModuleTerminatorOpName)
	}
	return nil
}

// GlobalOp is a value.global operation: a named buffer, optionally constant,
// optionally initialized, living in an address space.
type GlobalOp struct {
	*ir.Operation
}

// BuildGlobal creates a global of type memrefType. initial may be nil.
func BuildGlobal(b *ir.Builder, loc ir.Location, memrefType ir.MemRefType, isConstant bool, name string,
	initial ir.Attribute, addrSpace int, isExternal bool) GlobalOp {
	state := ir.NewState(loc, GlobalOpName)
	state.AddAttribute(ir.SymbolAttrName, ir.StringAttr(name))
	state.AddAttribute(TypeAttrName, ir.TypeAttr{Type: memrefType})
	if addrSpace != 0 {
		state.AddAttribute(AddrSpaceAttrName, ir.IntAttr(int64(addrSpace)))
	}
	if isConstant {
		state.AddAttribute(ConstantAttrName, ir.UnitAttr{})
	}
	if isExternal {
		state.AddAttribute(ExternalAttrName, ir.UnitAttr{})
	}
	if initial != nil {
		state.AddAttribute(ValueAttrName, initial)
	}
	op := b.Create(state)
	klog.V(4).Infof("value: built global @%s : %s in address space %d", name, memrefType, addrSpace)
	return GlobalOp{op}
}

// AsGlobal returns op as a GlobalOp if it is a value.global.
func AsGlobal(op *ir.Operation) (GlobalOp, bool) {
	if op == nil || op.Name() != GlobalOpName {
		return GlobalOp{}, false
	}
	return GlobalOp{op}, true
}

// SymName returns the global's name.
func (g GlobalOp) SymName() string { return ir.SymbolName(g.Operation) }

// Type returns the memref type of the global.
func (g GlobalOp) Type() ir.MemRefType {
	t, _ := g.GetAttrType(TypeAttrName).(ir.MemRefType)
	return t
}

// IsConstant reports whether the global is read-only.
func (g GlobalOp) IsConstant() bool { return g.HasAttr(ConstantAttrName) }

// IsExternal reports whether the global is defined elsewhere.
func (g GlobalOp) IsExternal() bool { return g.HasAttr(ExternalAttrName) }

// InitialValue returns the initializer, or nil.
func (g GlobalOp) InitialValue() ir.Attribute { return g.Attr(ValueAttrName) }

// AddrSpace returns the address space of the global.
func (g GlobalOp) AddrSpace() int { return int(g.GetAttrInt(AddrSpaceAttrName, 0)) }

func verifyGlobal(op *ir.Operation) error {
	g := GlobalOp{op}
	if g.SymName() == "" {
		return op.EmitOpError("requires a '%s' attribute", ir.SymbolAttrName)
	}
	t, ok := op.GetAttrType(TypeAttrName).(ir.MemRefType)
	if !ok {
		return op.EmitOpError("requires '%s' attribute of memref type", TypeAttrName)
	}
	if err := t.Shape.Validate(); err != nil {
		return op.EmitOpError("type %s: %v", t, err)
	}
	if dense, ok := g.InitialValue().(ir.DenseIntAttr); ok {
		if want := g.Type().Shape.NumElements(); len(dense.Values) != want {
			return op.EmitOpError("initial value has %d elements, type %s holds %d", len(dense.Values), g.Type(), want)
		}
	}
	return nil
}

// ReferenceGlobalOp is a value.ref_global operation producing the buffer of a global.
type ReferenceGlobalOp struct {
	*ir.Operation
}

// BuildReferenceGlobal creates a reference to global. The result has the global's type.
func BuildReferenceGlobal(b *ir.Builder, loc ir.Location, global GlobalOp) ReferenceGlobalOp {
	state := ir.NewState(loc, ReferenceGlobalOpName)
	state.AddAttribute(GlobalNameAttrName, ir.SymbolRefAttr(global.SymName()))
	state.AddTypes(global.Type())
	return ReferenceGlobalOp{b.Create(state)}
}

// AsReferenceGlobal returns op as a ReferenceGlobalOp if it is a value.ref_global.
func AsReferenceGlobal(op *ir.Operation) (ReferenceGlobalOp, bool) {
	if op == nil || op.Name() != ReferenceGlobalOpName {
		return ReferenceGlobalOp{}, false
	}
	return ReferenceGlobalOp{op}, true
}

// GlobalName returns the name of the referenced global.
func (r ReferenceGlobalOp) GlobalName() string { return r.GetAttrString(GlobalNameAttrName, "") }

// Global resolves the referenced global in the nearest enclosing scope that
// defines a symbol table and is isolated from above. A reference outside any
// such scope is a compiler bug and panics. The second result is false if the
// scope does not define the global.
func (r ReferenceGlobalOp) Global() (GlobalOp, bool) {
	scope := ir.NearestSymbolTableScope(r.Operation)
	if scope == nil {
		exceptions.Panicf("%s: reference to @%s is not nested in a symbol table scope", r.Loc(), r.GlobalName())
	}
	return AsGlobal(ir.LookupSymbolIn(scope, r.GlobalName()))
}

// GlobalIn resolves the referenced global in an explicit symbol table.
func (r ReferenceGlobalOp) GlobalIn(st *ir.SymbolTable) (GlobalOp, bool) {
	return AsGlobal(st.Lookup(r.GlobalName()))
}

func verifyReferenceGlobal(op *ir.Operation) error {
	r := ReferenceGlobalOp{op}
	if r.GlobalName() == "" {
		return op.EmitOpError("requires a '%s' attribute", GlobalNameAttrName)
	}
	if op.NumResults() != 1 {
		return op.EmitOpError("expects one result, got %d", op.NumResults())
	}
	g, ok := r.Global()
	if !ok {
		return op.EmitOpError("'@%s' does not reference a valid global", r.GlobalName())
	}
	if !op.Result(0).Type().Equal(g.Type()) {
		return op.EmitOpError("result type %s does not match type %s of global '@%s'", op.Result(0).Type(), g.Type(), g.SymName())
	}
	return nil
}
