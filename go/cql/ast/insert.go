package ast

import (
	"fmt"
	"slices"
	"strings"
)

// ==============================================================================
// INSERT
// ==============================================================================

// Insert represents an INSERT statement.
//
// When Values is a ValuesList its length is expected to match Columns; the
// mismatch is tolerated here and surfaces as an empty ValueMap.
type Insert struct {
	BeginBatch  *BeginBatch   // BEGIN BATCH prefix, nil when not batched
	Table       FQName        // target table
	Columns     []Identifier  // target columns
	Values      InsertValues  // VALUES list or JSON document
	UsingTTL    *TtlTimestamp // USING TTL/TIMESTAMP clause, nil when absent
	IfNotExists bool          // IF NOT EXISTS guard
}

// NewInsert creates a new Insert node.
func NewInsert(table FQName, columns []Identifier, values InsertValues) *Insert {
	return &Insert{Table: table, Columns: columns, Values: values}
}

func (i *Insert) NodeTag() NodeTag { return T_Insert }

func (i *Insert) StatementType() string { return "INSERT" }

func (i *Insert) String() string {
	return fmt.Sprintf("Insert(%s[%d cols])", i.Table.SqlString(), len(i.Columns))
}

// SqlString renders
// [batch]INSERT INTO table (cols) values[ IF NOT EXISTS][ USING ...].
func (i *Insert) SqlString() string {
	var b strings.Builder
	if i.BeginBatch != nil {
		b.WriteString(i.BeginBatch.SqlString())
	}
	b.WriteString("INSERT INTO ")
	b.WriteString(i.Table.SqlString())
	b.WriteString(" (")
	b.WriteString(FormatCommaList(i.Columns))
	b.WriteString(") ")
	b.WriteString(i.Values.SqlString())
	if i.IfNotExists {
		b.WriteString(" IF NOT EXISTS")
	}
	if i.UsingTTL != nil {
		b.WriteString(i.UsingTTL.SqlString())
	}
	return b.String()
}

// ValueMap returns the inserted operand for each column, ordered by column
// name. JSON inserts and inserts whose column and value counts differ yield an
// empty map. A repeated column keeps the operand of its last occurrence.
func (i *Insert) ValueMap() *ValueMap {
	vm := &ValueMap{}
	values, ok := i.Values.(*ValuesList)
	if !ok || len(values.Operands) != len(i.Columns) {
		return vm
	}

	index := make(map[Identifier]int, len(i.Columns))
	for n, col := range i.Columns {
		k := col.normalized()
		if at, seen := index[k]; seen {
			vm.entries[at].Value = values.Operands[n]
			continue
		}
		index[k] = len(vm.entries)
		vm.entries = append(vm.entries, ColumnValue{Column: col, Value: values.Operands[n]})
	}
	slices.SortFunc(vm.entries, func(a, b ColumnValue) int {
		return a.Column.Compare(b.Column)
	})
	return vm
}

// normalized returns the identifier in the form used as a map key.
func (i Identifier) normalized() Identifier {
	return Identifier{Name: i.key(), Quoted: i.Quoted}
}

// InsertValues is either a ValuesList or a JSONValues document.
type InsertValues interface {
	Node
	insertValues()
}

// ValuesList is the VALUES (...) form.
type ValuesList struct {
	Operands []Operand
}

func (v *ValuesList) insertValues()    {}
func (v *ValuesList) NodeTag() NodeTag { return T_InsertValues }
func (v *ValuesList) String() string   { return fmt.Sprintf("Values[%d]", len(v.Operands)) }
func (v *ValuesList) SqlString() string {
	return "VALUES (" + FormatCommaList(v.Operands) + ")"
}

// JSONValues is the JSON form. Text is emitted verbatim and must already be
// quoted as a CQL string literal or bind marker.
type JSONValues struct {
	Text string
}

func (v *JSONValues) insertValues()     {}
func (v *JSONValues) NodeTag() NodeTag  { return T_InsertValues }
func (v *JSONValues) String() string    { return fmt.Sprintf("Json(%d bytes)", len(v.Text)) }
func (v *JSONValues) SqlString() string { return "JSON " + v.Text }

// ==============================================================================
// VALUE MAP
// ==============================================================================

// ColumnValue pairs a column with the operand inserted into it.
type ColumnValue struct {
	Column Identifier
	Value  Operand
}

// ValueMap is an ordered column to operand mapping derived from an Insert.
// The operands are shared with the Insert they came from and must not be
// modified.
type ValueMap struct {
	entries []ColumnValue
}

// Len returns the number of columns in the map.
func (m *ValueMap) Len() int {
	return len(m.entries)
}

// Get returns the operand for column.
func (m *ValueMap) Get(column Identifier) (Operand, bool) {
	at, found := slices.BinarySearchFunc(m.entries, column, func(e ColumnValue, c Identifier) int {
		return e.Column.Compare(c)
	})
	if !found {
		return nil, false
	}
	return m.entries[at].Value, true
}

// Columns returns the columns in order.
func (m *ValueMap) Columns() []Identifier {
	out := make([]Identifier, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Column
	}
	return out
}

// Entries returns a copy of the ordered entries.
func (m *ValueMap) Entries() []ColumnValue {
	return slices.Clone(m.entries)
}

// Range calls fn for each entry in order until fn returns false.
func (m *ValueMap) Range(fn func(column Identifier, value Operand) bool) {
	for _, e := range m.entries {
		if !fn(e.Column, e.Value) {
			return
		}
	}
}
