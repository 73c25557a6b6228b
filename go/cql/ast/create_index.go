package ast

import (
	"fmt"
	"strings"
)

// ==============================================================================
// CREATE INDEX
// ==============================================================================

// CreateIndex represents a CREATE INDEX statement.
type CreateIndex struct {
	IfNotExists bool            // IF NOT EXISTS guard
	Name        *Identifier     // index name, nil for the server-chosen default
	Table       FQName          // table the index is on
	Column      IndexColumnType // indexed column and how it is indexed
}

// NewCreateIndex creates a new CreateIndex node.
func NewCreateIndex(table FQName, column IndexColumnType) *CreateIndex {
	return &CreateIndex{Table: table, Column: column}
}

func (c *CreateIndex) NodeTag() NodeTag { return T_CreateIndex }

func (c *CreateIndex) StatementType() string { return "CREATE INDEX" }

func (c *CreateIndex) String() string {
	name := "<default>"
	if c.Name != nil {
		name = c.Name.SqlString()
	}
	return fmt.Sprintf("CreateIndex(%s on %s)", name, c.Table.SqlString())
}

// SqlString renders CREATE INDEX [IF NOT EXISTS ][name ]ON table( column ).
func (c *CreateIndex) SqlString() string {
	var b strings.Builder
	b.WriteString("CREATE INDEX ")
	if c.IfNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	if c.Name != nil {
		b.WriteString(c.Name.SqlString())
		b.WriteString(" ")
	}
	b.WriteString("ON ")
	b.WriteString(c.Table.SqlString())
	b.WriteString("( ")
	b.WriteString(c.Column.SqlString())
	b.WriteString(" )")
	return b.String()
}

// IndexColumnType selects how a column is indexed: IndexColumn, IndexKeys,
// IndexEntries or IndexFull.
type IndexColumnType interface {
	Node
	indexColumnType()
	Column() Identifier
}

// IndexColumn indexes the column values directly.
type IndexColumn struct {
	Name Identifier
}

func (i *IndexColumn) indexColumnType()   {}
func (i *IndexColumn) Column() Identifier { return i.Name }
func (i *IndexColumn) NodeTag() NodeTag   { return T_IndexColumnType }
func (i *IndexColumn) String() string     { return fmt.Sprintf("Column(%s)", i.Name.SqlString()) }
func (i *IndexColumn) SqlString() string  { return i.Name.SqlString() }

// IndexKeys indexes the keys of a map column.
type IndexKeys struct {
	Name Identifier
}

func (i *IndexKeys) indexColumnType()   {}
func (i *IndexKeys) Column() Identifier { return i.Name }
func (i *IndexKeys) NodeTag() NodeTag   { return T_IndexColumnType }
func (i *IndexKeys) String() string     { return fmt.Sprintf("Keys(%s)", i.Name.SqlString()) }
func (i *IndexKeys) SqlString() string  { return wrapIndexColumn("KEYS", i.Name) }

// IndexEntries indexes the key/value entries of a map column.
type IndexEntries struct {
	Name Identifier
}

func (i *IndexEntries) indexColumnType()   {}
func (i *IndexEntries) Column() Identifier { return i.Name }
func (i *IndexEntries) NodeTag() NodeTag   { return T_IndexColumnType }
func (i *IndexEntries) String() string     { return fmt.Sprintf("Entries(%s)", i.Name.SqlString()) }
func (i *IndexEntries) SqlString() string  { return wrapIndexColumn("ENTRIES", i.Name) }

// IndexFull indexes a frozen collection column as a whole.
type IndexFull struct {
	Name Identifier
}

func (i *IndexFull) indexColumnType()   {}
func (i *IndexFull) Column() Identifier { return i.Name }
func (i *IndexFull) NodeTag() NodeTag   { return T_IndexColumnType }
func (i *IndexFull) String() string     { return fmt.Sprintf("Full(%s)", i.Name.SqlString()) }
func (i *IndexFull) SqlString() string  { return wrapIndexColumn("FULL", i.Name) }

func wrapIndexColumn(keyword string, name Identifier) string {
	return keyword + "( " + name.SqlString() + " )"
}
