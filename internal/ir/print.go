package ir

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PrintAttr renders an attribute in its stable textual form. Output is
// deterministic: dictionary keys are sorted and strings are NFC
// normalized at this boundary. The stored value is never mutated.
func PrintAttr(a Attr) string {
	switch v := a.(type) {
	case StringAttr:
		return strconv.Quote(norm.NFC.String(string(v)))
	case IntAttr:
		return strconv.FormatInt(int64(v), 10)
	case BoolAttr:
		return strconv.FormatBool(bool(v))
	case UnitAttr:
		return "unit"
	case SymbolRefAttr:
		return "@" + string(v)
	case PairsAttr:
		return fmt.Sprintf("#probe.pairs<%d, %d>", v.V0, v.V1)
	case ArrayAttr:
		var b strings.Builder
		b.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(PrintAttr(elem))
		}
		b.WriteByte(']')
		return b.String()
	case DictAttr:
		var b strings.Builder
		b.WriteByte('{')
		for i, k := range v.SortedKeys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(" = ")
			b.WriteString(PrintAttr(v[k]))
		}
		b.WriteByte('}')
		return b.String()
	default:
		return fmt.Sprintf("<unknown attr %T>", a)
	}
}

// PrintAttrDict renders an operation's attribute dictionary with sorted
// keys, or the empty string when there are no attributes.
func PrintAttrDict(op *Operation) string {
	if len(op.Attrs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range op.AttrNames() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(" = ")
		b.WriteString(PrintAttr(op.Attrs[name]))
	}
	b.WriteByte('}')
	return b.String()
}
