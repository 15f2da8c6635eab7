package dialect

import (
	"fmt"

	"github.com/probe-ir/probe/internal/directive"
	"github.com/probe-ir/probe/internal/ir"
)

// ParseFn is a custom textual parse hook for a dynamic operation. It
// consumes the op's custom syntax from p and fills op in.
type ParseFn func(p *directive.Parser, op *ir.Operation) error

// PrintFn is the matching print hook.
type PrintFn func(pr *directive.Printer, op *ir.Operation)

// DynamicOpDef describes one operation kind registered at runtime.
// Definitions are created once at dialect initialization and never
// mutated afterward; the registry owns them for the process lifetime.
type DynamicOpDef struct {
	Name string

	// Verify checks the operation's shape. Mandatory.
	Verify func(op *ir.Operation) error

	// VerifyRegion checks the operation's regions, when set.
	VerifyRegion func(op *ir.Operation) error

	// Parse and Print replace the generic textual codec only when both
	// are set.
	Parse ParseFn
	Print PrintFn
}

// HasCustomSyntax reports whether the definition supplies both textual
// hooks.
func (d *DynamicOpDef) HasCustomSyntax() bool {
	return d.Parse != nil && d.Print != nil
}

// Stock dynamic operation names.
const (
	DynamicGenericName              = "probe.dynamic_generic"
	DynamicOneOperandTwoResultsName = "probe.dynamic_one_operand_two_results"
	DynamicCustomParserPrinterName  = "probe.dynamic_custom_parser_printer"

	// SideEffectOpName declares its effects through the effects
	// attribute and answers the effect query directly, without the
	// fallback.
	SideEffectOpName = "probe.side_effect_op"
)

// CustomKeyword is the token the custom parser/printer pair recognizes.
const CustomKeyword = "custom_keyword"

func stockDynamicOps() []*DynamicOpDef {
	return []*DynamicOpDef{
		{
			Name:   DynamicGenericName,
			Verify: func(*ir.Operation) error { return nil },
		},
		{
			Name:   DynamicOneOperandTwoResultsName,
			Verify: verifyOneOperandTwoResults,
		},
		{
			Name:   SideEffectOpName,
			Verify: func(*ir.Operation) error { return nil },
		},
		{
			Name:   DynamicCustomParserPrinterName,
			Verify: func(*ir.Operation) error { return nil },
			Parse: func(p *directive.Parser, _ *ir.Operation) error {
				return p.ParseKeyword(CustomKeyword)
			},
			Print: func(pr *directive.Printer, _ *ir.Operation) {
				pr.Print(" " + CustomKeyword)
			},
		},
	}
}

func verifyOneOperandTwoResults(op *ir.Operation) error {
	if n := len(op.Operands); n != 1 {
		return &VerifyError{
			Op:      op.Name,
			Message: fmt.Sprintf("expected 1 operand, but had %d", n),
		}
	}
	if n := len(op.Results); n != 2 {
		return &VerifyError{
			Op:      op.Name,
			Message: fmt.Sprintf("expected 2 results, but had %d", n),
		}
	}
	return nil
}
