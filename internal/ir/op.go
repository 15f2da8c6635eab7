package ir

import "sort"

// Value is an SSA value: a named, typed edge between operations.
// The substrate tracks neither use-def chains nor dominance; the
// dialect only needs identity and type.
type Value struct {
	Name string
	Type Type
}

// Block is a sequence of operations with entry arguments.
type Block struct {
	Label string
	Args  []*Value
	Ops   []*Operation
}

// Region is an ordered list of blocks attached to an operation.
type Region struct {
	Blocks []*Block
}

// Operation is a generic IR operation instance. The dialect attaches all
// of its behavior (verification, effects, ranges, encodings) by name;
// the operation itself is pure structure.
type Operation struct {
	Name       string
	Attrs      map[string]Attr
	Operands   []*Value
	Results    []*Value
	Regions    []*Region
	Successors []*Block
}

// NewOperation creates an operation with an empty attribute dictionary.
func NewOperation(name string) *Operation {
	return &Operation{
		Name:  name,
		Attrs: make(map[string]Attr),
	}
}

// Attr returns the named attribute, if present.
func (o *Operation) Attr(name string) (Attr, bool) {
	a, ok := o.Attrs[name]
	return a, ok
}

// SetAttr sets or replaces the named attribute.
func (o *Operation) SetAttr(name string, a Attr) {
	if o.Attrs == nil {
		o.Attrs = make(map[string]Attr)
	}
	o.Attrs[name] = a
}

// RemoveAttr deletes the named attribute. Removing an absent attribute
// is a no-op.
func (o *Operation) RemoveAttr(name string) {
	delete(o.Attrs, name)
}

// AttrNames returns attribute names in lexical order.
func (o *Operation) AttrNames() []string {
	names := make([]string, 0, len(o.Attrs))
	for k := range o.Attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AddOperand appends an operand value.
func (o *Operation) AddOperand(v *Value) {
	o.Operands = append(o.Operands, v)
}

// AddResult appends a new result value with the given name and type.
func (o *Operation) AddResult(name string, t Type) *Value {
	v := &Value{Name: name, Type: t}
	o.Results = append(o.Results, v)
	return v
}

// AddRegion appends an empty region and returns it.
func (o *Operation) AddRegion() *Region {
	r := &Region{}
	o.Regions = append(o.Regions, r)
	return r
}

// AddBlock appends an empty block to the region and returns it.
func (r *Region) AddBlock(label string) *Block {
	b := &Block{Label: label}
	r.Blocks = append(r.Blocks, b)
	return b
}

// Append adds an operation to the end of the block.
func (b *Block) Append(op *Operation) {
	b.Ops = append(b.Ops, op)
}

// Module is the root of an IR tree: a single operation holding one
// region of top-level operations.
type Module struct {
	Op *Operation
}

// NewModule creates an empty module with one region and one entry block.
func NewModule() *Module {
	op := NewOperation("probe.module")
	op.AddRegion().AddBlock("entry")
	return &Module{Op: op}
}

// Body returns the module's entry block.
func (m *Module) Body() *Block {
	return m.Op.Regions[0].Blocks[0]
}

// Push appends a top-level operation to the module body.
func (m *Module) Push(op *Operation) {
	m.Body().Append(op)
}
