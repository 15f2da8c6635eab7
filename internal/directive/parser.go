// Package directive implements the probe dialect's reusable parse/print
// combinators: paired grammar fragments for optional operands, variadic
// lists, type captures, regions, successors, attribute pairs, and
// location specifiers.
//
// The generic textual-format engine is not part of this module; the
// small scanner here provides exactly the token stream the directives
// compose over. Every parse function has a print counterpart that emits
// what the parse function accepts.
package directive

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/probe-ir/probe/internal/ir"
)

// ParseError represents a failure at a token position. Parse failures
// are local: the caller aborts the surrounding operation parse.
type ParseError struct {
	Pos     int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Message)
}

// IsParseError returns true if err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Parser is a token stream over one textual fragment.
type Parser struct {
	src string
	pos int
}

// NewParser creates a parser over the given source fragment.
func NewParser(src string) *Parser {
	return &Parser{src: src}
}

// Pos returns the current byte offset, after leading whitespace.
func (p *Parser) Pos() int {
	p.skipSpace()
	return p.pos
}

// AtEnd reports whether only whitespace remains.
func (p *Parser) AtEnd() bool {
	p.skipSpace()
	return p.pos >= len(p.src)
}

func (p *Parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *Parser) errf(format string, args ...any) error {
	return &ParseError{Pos: p.pos, Message: fmt.Sprintf(format, args...)}
}

// peek returns the next non-space byte without consuming it, or 0 at end.
func (p *Parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// consumeLiteral consumes lit if it is next, reporting success.
func (p *Parser) consumeLiteral(lit string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], lit) {
		p.pos += len(lit)
		return true
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || c == '.' || (c >= '0' && c <= '9')
}

// parseIdent consumes one bare identifier (letters, digits, '_', '.').
func (p *Parser) parseIdent() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.src) || !isIdentStart(p.src[p.pos]) {
		return "", p.errf("expected identifier")
	}
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos], nil
}

// ParseKeyword consumes the exact keyword kw.
func (p *Parser) ParseKeyword(kw string) error {
	p.skipSpace()
	start := p.pos
	got, err := p.parseIdent()
	if err != nil || got != kw {
		p.pos = start
		return p.errf("expected keyword %q", kw)
	}
	return nil
}

// ParseOptionalKeyword consumes kw if it is next.
func (p *Parser) ParseOptionalKeyword(kw string) bool {
	start := p.pos
	if err := p.ParseKeyword(kw); err != nil {
		p.pos = start
		return false
	}
	return true
}

// ParseAnyKeyword consumes the next identifier, whatever it is.
func (p *Parser) ParseAnyKeyword() (string, error) {
	return p.parseIdent()
}

// ParseLParen expects "(".
func (p *Parser) ParseLParen() error {
	if !p.consumeLiteral("(") {
		return p.errf("expected '('")
	}
	return nil
}

// ParseOptionalLParen consumes "(" if present.
func (p *Parser) ParseOptionalLParen() bool {
	return p.consumeLiteral("(")
}

// ParseRParen expects ")".
func (p *Parser) ParseRParen() error {
	if !p.consumeLiteral(")") {
		return p.errf("expected ')'")
	}
	return nil
}

// ParseComma expects ",".
func (p *Parser) ParseComma() error {
	if !p.consumeLiteral(",") {
		return p.errf("expected ','")
	}
	return nil
}

// ParseOptionalComma consumes "," if present.
func (p *Parser) ParseOptionalComma() bool {
	return p.consumeLiteral(",")
}

// ParseColon expects ":".
func (p *Parser) ParseColon() error {
	if !p.consumeLiteral(":") {
		return p.errf("expected ':'")
	}
	return nil
}

// ParseOptionalColon consumes ":" if present.
func (p *Parser) ParseOptionalColon() bool {
	return p.consumeLiteral(":")
}

// ParseArrow expects "->".
func (p *Parser) ParseArrow() error {
	if !p.consumeLiteral("->") {
		return p.errf("expected '->'")
	}
	return nil
}

// ParseOperand consumes one SSA operand reference: '%' identifier.
func (p *Parser) ParseOperand() (string, error) {
	if !p.consumeLiteral("%") {
		return "", p.errf("expected operand")
	}
	name, err := p.parseIdent()
	if err != nil {
		return "", err
	}
	return name, nil
}

// ParseOptionalOperand consumes an operand if one is next.
func (p *Parser) ParseOptionalOperand() (string, bool, error) {
	if p.peek() != '%' {
		return "", false, nil
	}
	name, err := p.ParseOperand()
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// ParseOperandList consumes a comma-separated, possibly empty operand
// list.
func (p *Parser) ParseOperandList() ([]string, error) {
	var out []string
	for p.peek() == '%' {
		name, err := p.ParseOperand()
		if err != nil {
			return nil, err
		}
		out = append(out, name)
		if !p.ParseOptionalComma() {
			break
		}
	}
	return out, nil
}

// ParseSuccessor consumes one block reference: '^' identifier.
func (p *Parser) ParseSuccessor() (string, error) {
	if !p.consumeLiteral("^") {
		return "", p.errf("expected successor")
	}
	return p.parseIdent()
}

// ParseInteger consumes one decimal integer, optionally negative.
func (p *Parser) ParseInteger() (int64, error) {
	p.skipSpace()
	start := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start || p.src[start] == '-' && p.pos == start+1 {
		p.pos = start
		return 0, p.errf("expected integer")
	}
	v, err := strconv.ParseInt(p.src[start:p.pos], 10, 64)
	if err != nil {
		p.pos = start
		return 0, p.errf("bad integer literal: %v", err)
	}
	return v, nil
}

// ParseString consumes one double-quoted string literal.
func (p *Parser) ParseString() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '"' {
		return "", p.errf("expected string literal")
	}
	// Find the closing quote, honoring backslash escapes.
	end := p.pos + 1
	for end < len(p.src) && p.src[end] != '"' {
		if p.src[end] == '\\' {
			end++
		}
		end++
	}
	if end >= len(p.src) {
		return "", p.errf("unterminated string literal")
	}
	s, err := strconv.Unquote(p.src[p.pos : end+1])
	if err != nil {
		return "", p.errf("bad string literal: %v", err)
	}
	p.pos = end + 1
	return s, nil
}

// ParseBase64Bytes consumes a quoted base64 literal and decodes it.
func (p *Parser) ParseBase64Bytes() ([]byte, error) {
	at := p.Pos()
	s, err := p.ParseString()
	if err != nil {
		return nil, err
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &ParseError{Pos: at, Message: fmt.Sprintf("bad base64 literal: %v", err)}
	}
	return decoded, nil
}

// ParseType consumes one type: index, iN, siN, uiN, or tuple<...>.
func (p *Parser) ParseType() (ir.Type, error) {
	p.skipSpace()
	at := p.pos
	word, err := p.parseIdent()
	if err != nil {
		return nil, p.errf("expected type")
	}
	switch {
	case word == "index":
		return ir.IndexType{}, nil
	case word == "tuple":
		if !p.consumeLiteral("<") {
			return nil, p.errf("expected '<' after tuple")
		}
		var elems ir.TupleType
		if p.peek() != '>' {
			for {
				elem, err := p.ParseType()
				if err != nil {
					return nil, err
				}
				elems = append(elems, elem)
				if !p.ParseOptionalComma() {
					break
				}
			}
		}
		if !p.consumeLiteral(">") {
			return nil, p.errf("expected '>' to close tuple")
		}
		return elems, nil
	default:
		if t, ok := parseIntTypeWord(word); ok {
			return t, nil
		}
		p.pos = at
		return nil, p.errf("unknown type %q", word)
	}
}

// parseIntTypeWord interprets iN / siN / uiN spellings.
func parseIntTypeWord(word string) (ir.IntType, bool) {
	sign := ir.Signless
	digits := ""
	switch {
	case strings.HasPrefix(word, "si"):
		sign, digits = ir.Signed, word[2:]
	case strings.HasPrefix(word, "ui"):
		sign, digits = ir.Unsigned, word[2:]
	case strings.HasPrefix(word, "i"):
		digits = word[1:]
	default:
		return ir.IntType{}, false
	}
	width, err := strconv.ParseUint(digits, 10, 32)
	if err != nil || width == 0 || width > 64 {
		return ir.IntType{}, false
	}
	return ir.IntType{Width: uint32(width), Signedness: sign}, true
}

// ParseTypeList consumes a comma-separated, possibly empty type list.
// The list ends at the first token that cannot start a type.
func (p *Parser) ParseTypeList() ([]ir.Type, error) {
	var out []ir.Type
	for {
		c := p.peek()
		if !isIdentStart(c) {
			break
		}
		t, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if !p.ParseOptionalComma() {
			break
		}
	}
	return out, nil
}

// ParseAttribute consumes one attribute literal: integer, boolean,
// string, unit, symbol reference, array, or dictionary.
func (p *Parser) ParseAttribute() (ir.Attr, error) {
	switch c := p.peek(); {
	case c == '"':
		s, err := p.ParseString()
		if err != nil {
			return nil, err
		}
		return ir.StringAttr(s), nil
	case c == '@':
		p.consumeLiteral("@")
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return ir.SymbolRefAttr(name), nil
	case c == '[':
		p.consumeLiteral("[")
		var arr ir.ArrayAttr
		if p.peek() != ']' {
			for {
				elem, err := p.ParseAttribute()
				if err != nil {
					return nil, err
				}
				arr = append(arr, elem)
				if !p.ParseOptionalComma() {
					break
				}
			}
		}
		if !p.consumeLiteral("]") {
			return nil, p.errf("expected ']' to close array attribute")
		}
		return arr, nil
	case c == '{':
		return p.parseDictAttr()
	case c == '-' || (c >= '0' && c <= '9'):
		v, err := p.ParseInteger()
		if err != nil {
			return nil, err
		}
		return ir.IntAttr(v), nil
	default:
		switch {
		case p.ParseOptionalKeyword("true"):
			return ir.BoolAttr(true), nil
		case p.ParseOptionalKeyword("false"):
			return ir.BoolAttr(false), nil
		case p.ParseOptionalKeyword("unit"):
			return ir.UnitAttr{}, nil
		default:
			return nil, p.errf("expected attribute")
		}
	}
}

// parseDictAttr consumes "{ name = attr, ... }".
func (p *Parser) parseDictAttr() (ir.DictAttr, error) {
	if !p.consumeLiteral("{") {
		return nil, p.errf("expected '{'")
	}
	dict := ir.DictAttr{}
	if p.peek() != '}' {
		for {
			name, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			if !p.consumeLiteral("=") {
				return nil, p.errf("expected '=' after attribute name %q", name)
			}
			value, err := p.ParseAttribute()
			if err != nil {
				return nil, err
			}
			dict[name] = value
			if !p.ParseOptionalComma() {
				break
			}
		}
	}
	if !p.consumeLiteral("}") {
		return nil, p.errf("expected '}' to close attribute dictionary")
	}
	return dict, nil
}

// ParseOptionalAttrDict consumes an attribute dictionary if one is next
// and merges it into op's attributes.
func (p *Parser) ParseOptionalAttrDict(op *ir.Operation) error {
	if p.peek() != '{' {
		return nil
	}
	dict, err := p.parseDictAttr()
	if err != nil {
		return err
	}
	for k, v := range dict {
		op.SetAttr(k, v)
	}
	return nil
}

// ParseRegion consumes one region: "{", an optional "^label" entry
// block header, "}". Nested generic operations are out of scope here;
// the directives only exercise the pairing contract.
func (p *Parser) ParseRegion() (*ir.Region, error) {
	if !p.consumeLiteral("{") {
		return nil, p.errf("expected '{' to open region")
	}
	region := &ir.Region{}
	label := "entry"
	if p.peek() == '^' {
		var err error
		if label, err = p.ParseSuccessor(); err != nil {
			return nil, err
		}
	}
	region.AddBlock(label)
	if !p.consumeLiteral("}") {
		return nil, p.errf("expected '}' to close region")
	}
	return region, nil
}

// ParseOptionalLocationSpecifier consumes a trailing `loc("...")`
// suffix if present. When absent, the encoded current source position
// is returned instead, so an operation always ends up with a location.
func (p *Parser) ParseOptionalLocationSpecifier() (string, error) {
	at := p.Pos()
	if !p.ParseOptionalKeyword("loc") {
		return p.encodedLoc(at), nil
	}
	if err := p.ParseLParen(); err != nil {
		return "", err
	}
	loc, err := p.ParseString()
	if err != nil {
		return "", err
	}
	if err := p.ParseRParen(); err != nil {
		return "", err
	}
	return loc, nil
}

// encodedLoc renders a source position as a location string.
func (p *Parser) encodedLoc(offset int) string {
	return fmt.Sprintf("input:%d", offset)
}
