package directive

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/probe-ir/probe/internal/ir"
)

// Printer accumulates one textual fragment. Each Print* method emits
// exactly what the matching Parse* method accepts.
type Printer struct {
	b strings.Builder
}

// NewPrinter creates an empty printer.
func NewPrinter() *Printer {
	return &Printer{}
}

// String returns the accumulated text.
func (p *Printer) String() string {
	return p.b.String()
}

// Print appends raw text.
func (p *Printer) Print(s string) {
	p.b.WriteString(s)
}

// PrintOperand appends an SSA operand reference.
func (p *Printer) PrintOperand(name string) {
	p.b.WriteString("%")
	p.b.WriteString(name)
}

// PrintOperandList appends a comma-separated operand list.
func (p *Printer) PrintOperandList(names []string) {
	for i, name := range names {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.PrintOperand(name)
	}
}

// PrintSuccessor appends a block reference.
func (p *Printer) PrintSuccessor(label string) {
	p.b.WriteString("^")
	p.b.WriteString(label)
}

// PrintType appends a type spelling.
func (p *Printer) PrintType(t ir.Type) {
	p.b.WriteString(t.String())
}

// PrintTypeList appends a comma-separated type list.
func (p *Printer) PrintTypeList(types []ir.Type) {
	for i, t := range types {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.PrintType(t)
	}
}

// PrintAttribute appends an attribute literal.
func (p *Printer) PrintAttribute(a ir.Attr) {
	p.b.WriteString(ir.PrintAttr(a))
}

// PrintAttrDict appends an operation's attribute dictionary, when it
// has one.
func (p *Printer) PrintAttrDict(op *ir.Operation) {
	p.b.WriteString(ir.PrintAttrDict(op))
}

/// PrintRegion appends a region: its entry block label inside braces.
func (p *Printer) PrintRegion(r *ir.Region) {
	if len(r.Blocks) == 0 || r.Blocks[0].Label == "entry" {
		p.b.WriteString("{ }")
		return
	}
	p.b.WriteString("{ ^")
	p.b.WriteString(r.Blocks[0].Label)
	p.b.WriteString(" }")
}

// PrintBase64Bytes appends a quoted base64 literal.
func (p *Printer) PrintBase64Bytes(data []byte) {
	p.b.WriteString(`"`)
	p.b.WriteString(base64.StdEncoding.EncodeToString(data))
	p.b.WriteString(`"`)
}

// PrintLocationSpecifier appends a `loc("...")` suffix.
func (p *Printer) PrintLocationSpecifier(loc string) {
	p.b.WriteString("loc(")
	p.b.WriteString(strconv.Quote(loc))
	p.b.WriteString(")")
}
