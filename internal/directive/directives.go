package directive

import (
	"slices"

	"github.com/probe-ir/probe/internal/ir"
)

// Operands captures the operand shape shared by several directives: one
// required operand, one optional operand, and a variadic tail.
type Operands struct {
	Operand    string
	Opt        string
	HasOpt     bool
	VarOperands []string
}

// Types captures the matching type shape.
type Types struct {
	Operand  ir.Type
	Opt      ir.Type
	VarTypes []ir.Type
}

// ParseOptionalOperand reads an optional parenthesized operand:
// "(%x)" or nothing.
func ParseOptionalOperand(p *Parser) (string, bool, error) {
	if !p.ParseOptionalLParen() {
		return "", false, nil
	}
	name, err := p.ParseOperand()
	if err != nil {
		return "", false, err
	}
	if err := p.ParseRParen(); err != nil {
		return "", false, err
	}
	return name, true, nil
}

// PrintOptionalOperand writes the counterpart of ParseOptionalOperand.
func PrintOptionalOperand(pr *Printer, name string, present bool) {
	if present {
		pr.Print("(")
		pr.PrintOperand(name)
		pr.Print(") ")
	}
}

// ParseOperands reads "%a [, %b] -> (%c, ...)".
func ParseOperands(p *Parser) (Operands, error) {
	var out Operands
	var err error
	if out.Operand, err = p.ParseOperand(); err != nil {
		return out, err
	}
	if p.ParseOptionalComma() {
		if out.Opt, err = p.ParseOperand(); err != nil {
			return out, err
		}
		out.HasOpt = true
	}
	if err := p.ParseArrow(); err != nil {
		return out, err
	}
	if err := p.ParseLParen(); err != nil {
		return out, err
	}
	if out.VarOperands, err = p.ParseOperandList(); err != nil {
		return out, err
	}
	return out, p.ParseRParen()
}

// PrintOperands writes the counterpart of ParseOperands.
func PrintOperands(pr *Printer, ops Operands) {
	pr.PrintOperand(ops.Operand)
	if ops.HasOpt {
		pr.Print(", ")
		pr.PrintOperand(ops.Opt)
	}
	pr.Print(" -> (")
	pr.PrintOperandList(ops.VarOperands)
	pr.Print(")")
}

// ParseResults reads the type list matching ParseOperands:
// ": T [, T2] -> (T3, ...)".
func ParseResults(p *Parser) (Types, error) {
	var out Types
	var err error
	if err = p.ParseColon(); err != nil {
		return out, err
	}
	if out.Operand, err = p.ParseType(); err != nil {
		return out, err
	}
	if p.ParseOptionalComma() {
		if out.Opt, err = p.ParseType(); err != nil {
			return out, err
		}
	}
	if err := p.ParseArrow(); err != nil {
		return out, err
	}
	if err := p.ParseLParen(); err != nil {
		return out, err
	}
	if out.VarTypes, err = p.ParseTypeList(); err != nil {
		return out, err
	}
	return out, p.ParseRParen()
}

// PrintResults writes the counterpart of ParseResults.
func PrintResults(pr *Printer, types Types) {
	pr.Print(" : ")
	pr.PrintType(types.Operand)
	if types.Opt != nil {
		pr.Print(", ")
		pr.PrintType(types.Opt)
	}
	pr.Print(" -> (")
	pr.PrintTypeList(types.VarTypes)
	pr.Print(")")
}

// ParseWithTypeRefs re-parses a results shape after the
// "type_refs_capture" keyword and fails unless it equals the shape
// captured by the first parse. This is the double-capture consistency
// check: the two spellings in the text must agree.
func ParseWithTypeRefs(p *Parser, captured Types) error {
	at := p.Pos()
	if err := p.ParseKeyword("type_refs_capture"); err != nil {
		return err
	}
	again, err := ParseResults(p)
	if err != nil {
		return err
	}
	if !typesEqual(captured, again) {
		return &ParseError{Pos: at, Message: "type_refs_capture disagrees with the first type capture"}
	}
	return nil
}

// PrintWithTypeRefs writes the counterpart of ParseWithTypeRefs.
func PrintWithTypeRefs(pr *Printer, types Types) {
	pr.Print(" type_refs_capture ")
	PrintResults(pr, types)
}

func typesEqual(a, b Types) bool {
	if !typeEq(a.Operand, b.Operand) || !typeEq(a.Opt, b.Opt) {
		return false
	}
	return slices.EqualFunc(a.VarTypes, b.VarTypes, typeEq)
}

// typeEq compares types by spelling; tuple types are not comparable
// with ==.
func typeEq(a, b ir.Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

// ParseOperandsAndTypes composes ParseOperands with ParseResults.
func ParseOperandsAndTypes(p *Parser) (Operands, Types, error) {
	ops, err := ParseOperands(p)
	if err != nil {
		return ops, Types{}, err
	}
	types, err := ParseResults(p)
	return ops, types, err
}

// PrintOperandsAndTypes writes the counterpart of ParseOperandsAndTypes.
func PrintOperandsAndTypes(pr *Printer, ops Operands, types Types) {
	PrintOperands(pr, ops)
	PrintResults(pr, types)
}

// ParseRegions reads one region plus at most one variadic region after
// an optional comma.
func ParseRegions(p *Parser) (*ir.Region, []*ir.Region, error) {
	region, err := p.ParseRegion()
	if err != nil {
		return nil, nil, err
	}
	if !p.ParseOptionalComma() {
		return region, nil, nil
	}
	varRegion, err := p.ParseRegion()
	if err != nil {
		return nil, nil, err
	}
	return region, []*ir.Region{varRegion}, nil
}

// PrintRegions writes the counterpart of ParseRegions.
func PrintRegions(pr *Printer, region *ir.Region, varRegions []*ir.Region) {
	pr.PrintRegion(region)
	if len(varRegions) > 0 {
		pr.Print(", ")
		for _, r := range varRegions {
			pr.PrintRegion(r)
		}
	}
}

// ParseSuccessors reads one successor plus at most one variadic
// successor after an optional comma. The variadic successor is
// duplicated into a two-element list; that duplication is part of this
// directive's contract and must not be normalized away.
func ParseSuccessors(p *Parser) (string, []string, error) {
	successor, err := p.ParseSuccessor()
	if err != nil {
		return "", nil, err
	}
	if !p.ParseOptionalComma() {
		return successor, nil, nil
	}
	varSuccessor, err := p.ParseSuccessor()
	if err != nil {
		return "", nil, err
	}
	return successor, []string{varSuccessor, varSuccessor}, nil
}

// PrintSuccessors writes the counterpart of ParseSuccessors: the first
// variadic successor stands in for the duplicated pair.
func PrintSuccessors(pr *Printer, successor string, varSuccessors []string) {
	pr.PrintSuccessor(successor)
	if len(varSuccessors) > 0 {
		pr.Print(", ")
		pr.PrintSuccessor(varSuccessors[0])
	}
}

// ParseAttributes reads one attribute plus an optional second after a
// comma.
func ParseAttributes(p *Parser) (ir.Attr, ir.Attr, error) {
	attr, err := p.ParseAttribute()
	if err != nil {
		return nil, nil, err
	}
	if !p.ParseOptionalComma() {
		return attr, nil, nil
	}
	optAttr, err := p.ParseAttribute()
	if err != nil {
		return nil, nil, err
	}
	return attr, optAttr, nil
}

// PrintAttributes writes the counterpart of ParseAttributes.
func PrintAttributes(pr *Printer, attr, optAttr ir.Attr) {
	pr.PrintAttribute(attr)
	if optAttr != nil {
		pr.Print(", ")
		pr.PrintAttribute(optAttr)
	}
}

// ParseOptionalOperandRef reads the presence-count encoding: an integer
// literal that must be 1 when the optional operand was captured earlier
// in the parse and 0 when it was not. Disagreement is a parse failure.
func ParseOptionalOperandRef(p *Parser, operandPresent bool) error {
	at := p.Pos()
	count, err := p.ParseInteger()
	if err != nil {
		return err
	}
	if (count != 0) != operandPresent {
		return &ParseError{Pos: at, Message: "operand count disagrees with captured operand presence"}
	}
	return nil
}

// PrintOptionalOperandRef writes "1" or "0" for operand presence.
func PrintOptionalOperandRef(pr *Printer, operandPresent bool) {
	if operandPresent {
		pr.Print("1")
	} else {
		pr.Print("0")
	}
}

// ParseCustomFormat reads the "custom_format" keyword, falling back to
// "custom_format_fallback" and reporting which spelling appeared.
func ParseCustomFormat(p *Parser) (fallback bool, err error) {
	if p.ParseOptionalKeyword("custom_format") {
		return false, nil
	}
	if p.ParseOptionalKeyword("custom_format_fallback") {
		return true, nil
	}
	return false, &ParseError{Pos: p.Pos(), Message: "expected custom_format or custom_format_fallback"}
}

// ParseWrappedKeyword reads any keyword and stores it on the op as a
// string attribute named "keyword".
func ParseWrappedKeyword(p *Parser, op *ir.Operation) error {
	word, err := p.ParseAnyKeyword()
	if err != nil {
		return err
	}
	op.SetAttr("keyword", ir.StringAttr(word))
	return nil
}

// ParseB64Bytes reads a base64 literal and stores the decoded bytes on
// the op as a string attribute named "b64".
func ParseB64Bytes(p *Parser, op *ir.Operation) error {
	decoded, err := p.ParseBase64Bytes()
	if err != nil {
		return err
	}
	op.SetAttr("b64", ir.StringAttr(decoded))
	return nil
}
