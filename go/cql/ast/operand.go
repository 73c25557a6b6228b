package ast

import (
	"fmt"
	"strings"
)

// Operand is a value expression in a statement: a literal, a bind marker, a
// column reference, a function call, a tuple or a collection literal.
type Operand interface {
	Node
	operand()
}

// Const is a literal whose text is emitted verbatim. String literals must
// already carry their quotes; see NewStringConst.
type Const struct {
	Text string
}

// NewConst creates a literal operand from its CQL text.
func NewConst(text string) *Const {
	return &Const{Text: text}
}

// NewStringConst creates a quoted CQL string literal.
func NewStringConst(value string) *Const {
	return &Const{Text: QuoteStringLiteral(value)}
}

func (c *Const) operand()          {}
func (c *Const) NodeTag() NodeTag  { return T_Operand }
func (c *Const) String() string    { return fmt.Sprintf("Const(%s)", c.Text) }
func (c *Const) SqlString() string { return c.Text }

// Param is a bind marker: `?` when Name is empty, `:name` otherwise.
type Param struct {
	Name string
}

func (p *Param) operand()         {}
func (p *Param) NodeTag() NodeTag { return T_Operand }
func (p *Param) String() string   { return fmt.Sprintf("Param(%s)", p.SqlString()) }
func (p *Param) SqlString() string {
	if p.Name == "" {
		return "?"
	}
	return ":" + p.Name
}

// ColumnOperand refers to a column by name.
type ColumnOperand struct {
	Name Identifier
}

func (c *ColumnOperand) operand()          {}
func (c *ColumnOperand) NodeTag() NodeTag  { return T_Operand }
func (c *ColumnOperand) String() string    { return fmt.Sprintf("ColumnOperand(%s)", c.Name.SqlString()) }
func (c *ColumnOperand) SqlString() string { return c.Name.SqlString() }

// FuncCall is a function applied to operands, e.g. now() or toTimestamp(now()).
type FuncCall struct {
	Name string
	Args []Operand
}

func (f *FuncCall) operand()         {}
func (f *FuncCall) NodeTag() NodeTag { return T_Operand }
func (f *FuncCall) String() string   { return fmt.Sprintf("FuncCall(%s/%d)", f.Name, len(f.Args)) }
func (f *FuncCall) SqlString() string {
	return f.Name + "(" + FormatCommaList(f.Args) + ")"
}

// Tuple is a parenthesized operand list.
type Tuple struct {
	Elements []Operand
}

func (t *Tuple) operand()         {}
func (t *Tuple) NodeTag() NodeTag { return T_Operand }
func (t *Tuple) String() string   { return fmt.Sprintf("Tuple[%d]", len(t.Elements)) }
func (t *Tuple) SqlString() string {
	return "(" + FormatCommaList(t.Elements) + ")"
}

// CollectionKind selects the literal syntax of a Collection.
type CollectionKind int

const (
	COLLECTION_LIST CollectionKind = iota
	COLLECTION_SET
	COLLECTION_MAP
)

func (k CollectionKind) String() string {
	switch k {
	case COLLECTION_LIST:
		return "LIST"
	case COLLECTION_SET:
		return "SET"
	case COLLECTION_MAP:
		return "MAP"
	default:
		return fmt.Sprintf("CollectionKind(%d)", int(k))
	}
}

// CollectionElement is one element of a collection literal. Key is set only
// for map literals.
type CollectionElement struct {
	Key   Operand
	Value Operand
}

// Collection is a list `[a, b]`, set `{a, b}` or map `{k: v}` literal.
type Collection struct {
	Kind     CollectionKind
	Elements []CollectionElement
}

func (c *Collection) operand()         {}
func (c *Collection) NodeTag() NodeTag { return T_Operand }
func (c *Collection) String() string {
	return fmt.Sprintf("Collection(%s[%d])", c.Kind, len(c.Elements))
}

func (c *Collection) SqlString() string {
	parts := make([]string, len(c.Elements))
	for i, e := range c.Elements {
		if c.Kind == COLLECTION_MAP && e.Key != nil {
			parts[i] = e.Key.SqlString() + ": " + e.Value.SqlString()
		} else {
			parts[i] = e.Value.SqlString()
		}
	}
	body := strings.Join(parts, ", ")
	if c.Kind == COLLECTION_LIST {
		return "[" + body + "]"
	}
	return "{" + body + "}"
}

// Null is the NULL literal.
type Null struct{}

func (n *Null) operand()          {}
func (n *Null) NodeTag() NodeTag  { return T_Operand }
func (n *Null) String() string    { return "Null" }
func (n *Null) SqlString() string { return "NULL" }
