package ir

// SymbolAttrName is the attribute holding an operation's symbol name.
const SymbolAttrName = "sym_name"

// SymbolName returns the symbol name of op, or "".
func SymbolName(op *Operation) string {
	return op.GetAttrString(SymbolAttrName, "")
}

// IsSymbolTableScope reports whether op can resolve symbols for nested operations:
// it must both define a symbol table and be isolated from above.
func IsSymbolTableScope(op *Operation) bool {
	return op.HasTrait(TraitSymbolTable) && op.HasTrait(TraitIsolatedFromAbove)
}

// NearestSymbolTableScope walks outwards from op's parent to the closest symbol table scope.
// It returns nil if op is not nested in one.
func NearestSymbolTableScope(op *Operation) *Operation {
	scope := op.ParentOp()
	for scope != nil && !IsSymbolTableScope(scope) {
		scope = scope.ParentOp()
	}
	return scope
}

// SymbolTable is a read-only index of the symbols defined directly in an operation's body.
// It never owns the operations it refers to.
type SymbolTable struct {
	op      *Operation
	symbols map[string]*Operation
}

// NewSymbolTable indexes the symbols of op's first region.
func NewSymbolTable(op *Operation) *SymbolTable {
	st := &SymbolTable{op: op, symbols: make(map[string]*Operation)}
	if op.NumRegions() == 0 {
		return st
	}
	for _, block := range op.Region(0).Blocks() {
		for _, nested := range block.Operations() {
			if name := SymbolName(nested); name != "" {
				if _, dup := st.symbols[name]; !dup {
					st.symbols[name] = nested
				}
			}
		}
	}
	return st
}

// Op returns the operation the table was built for.
func (st *SymbolTable) Op() *Operation { return st.op }

// Lookup returns the operation defining name, or nil.
func (st *SymbolTable) Lookup(name string) *Operation {
	return st.symbols[name]
}

// Len returns the number of symbols in the table.
func (st *SymbolTable) Len() int { return len(st.symbols) }

// LookupSymbolIn finds name among the symbols defined directly in scope.
func LookupSymbolIn(scope *Operation, name string) *Operation {
	if scope.NumRegions() == 0 {
		return nil
	}
	for _, block := range scope.Region(0).Blocks() {
		for _, nested := range block.Operations() {
			if SymbolName(nested) == name {
				return nested
			}
		}
	}
	return nil
}
