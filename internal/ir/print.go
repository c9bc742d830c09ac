package ir

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

// Print writes op in generic form.
func Print(w io.Writer, op *Operation) error {
	p := &printer{w: w, names: make(map[*Value]string)}
	p.printOp(op, 0)
	return p.err
}

// String renders op in generic form.
func (op *Operation) String() string {
	var sb strings.Builder
	_ = Print(&sb, op)
	return strings.TrimRight(sb.String(), "\n")
}

type printer struct {
	w        io.Writer
	err      error
	names    map[*Value]string
	nextVal  int
	nextArg  int
	nextBlck int
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) name(v *Value) string {
	if n, ok := p.names[v]; ok {
		return n
	}
	var n string
	if v.IsBlockArgument() {
		n = fmt.Sprintf("%%arg%d", p.nextArg)
		p.nextArg++
	} else {
		n = fmt.Sprintf("%%%d", p.nextVal)
		p.nextVal++
	}
	p.names[v] = n
	return n
}

func (p *printer) printOp(op *Operation, indent int) {
	pad := strings.Repeat("  ", indent)
	p.printf("%s", pad)
	if len(op.results) > 0 {
		p.printf("%s = ", strings.Join(lo.Map(op.results, func(v *Value, _ int) string { return p.name(v) }), ", "))
	}
	p.printf("%q(%s)", op.name, strings.Join(lo.Map(op.operands, func(v *Value, _ int) string { return p.name(v) }), ", "))
	if len(op.regions) > 0 {
		p.printf(" (")
		for i, r := range op.regions {
			if i > 0 {
				p.printf(", ")
			}
			p.printRegion(r, indent)
		}
		p.printf(")")
	}
	if len(op.attrs) > 0 {
		p.printf(" %s", op.attrs)
	}
	p.printf(" : (%s) -> (%s)\n", joinTypes(op.OperandTypes()), joinTypes(op.ResultTypes()))
}

func (p *printer) printRegion(r *Region, indent int) {
	p.printf("{\n")
	pad := strings.Repeat("  ", indent)
	for _, b := range r.blocks {
		args := lo.Map(b.args, func(v *Value, _ int) string { return p.name(v) + ": " + v.typ.String() })
		p.printf("%s^bb%d(%s):\n", pad, p.nextBlck, strings.Join(args, ", "))
		p.nextBlck++
		for _, op := range b.ops {
			p.printOp(op, indent+1)
		}
	}
	p.printf("%s}", pad)
}
