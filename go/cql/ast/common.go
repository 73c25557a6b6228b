package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ==============================================================================
// IDENTIFIERS AND NAMES
// ==============================================================================

// Identifier is a column, table, keyspace or index name.
// Unquoted identifiers are case-insensitive; quoted identifiers keep their case
// and may contain any character.
type Identifier struct {
	Name   string
	Quoted bool
}

// NewIdentifier creates an unquoted identifier.
func NewIdentifier(name string) Identifier {
	return Identifier{Name: name}
}

// NewQuotedIdentifier creates a quoted identifier.
func NewQuotedIdentifier(name string) Identifier {
	return Identifier{Name: name, Quoted: true}
}

func (i Identifier) NodeTag() NodeTag { return T_Identifier }

func (i Identifier) String() string {
	if i.Quoted {
		return fmt.Sprintf("Identifier(%q)", i.Name)
	}
	return fmt.Sprintf("Identifier(%s)", i.Name)
}

func (i Identifier) SqlString() string {
	if i.Quoted {
		return QuoteIdentifier(i.Name)
	}
	return i.Name
}

// key is the form used for ordering and equality.
func (i Identifier) key() string {
	if i.Quoted {
		return i.Name
	}
	return strings.ToLower(i.Name)
}

// Compare orders identifiers by their effective name: unquoted names compare
// case-insensitively, quoted names verbatim. When the effective names are equal
// the unquoted identifier sorts first, so a and "a" are distinct entries even
// though the server resolves both to the same column.
func (i Identifier) Compare(other Identifier) int {
	if c := strings.Compare(i.key(), other.key()); c != 0 {
		return c
	}
	switch {
	case i.Quoted == other.Quoted:
		return 0
	case !i.Quoted:
		return -1
	default:
		return 1
	}
}

// Equal reports whether two identifiers name the same thing.
func (i Identifier) Equal(other Identifier) bool {
	return i.Compare(other) == 0
}

// FQName is an optionally keyspace-qualified table name.
type FQName struct {
	Keyspace *Identifier
	Name     Identifier
}

// NewFQName creates a table name without a keyspace.
func NewFQName(name string) FQName {
	return FQName{Name: NewIdentifier(name)}
}

// NewQualifiedName creates a keyspace-qualified table name.
func NewQualifiedName(keyspace, name string) FQName {
	ks := NewIdentifier(keyspace)
	return FQName{Keyspace: &ks, Name: NewIdentifier(name)}
}

func (f FQName) NodeTag() NodeTag { return T_FQName }

func (f FQName) String() string {
	return fmt.Sprintf("FQName(%s)", f.SqlString())
}

func (f FQName) SqlString() string {
	if f.Keyspace != nil {
		return f.Keyspace.SqlString() + "." + f.Name.SqlString()
	}
	return f.Name.SqlString()
}

// ==============================================================================
// COLUMN DEFINITIONS
// ==============================================================================

// DataType is a CQL column type such as int, list<text> or frozen<map<int, text>>.
type DataType struct {
	Name   string   // base type name
	Params []string // type parameters for collections, tuples and vectors
	Frozen bool
}

// NewDataType creates a data type with optional type parameters.
func NewDataType(name string, params ...string) DataType {
	return DataType{Name: name, Params: params}
}

func (d DataType) NodeTag() NodeTag { return T_DataType }

func (d DataType) String() string {
	return fmt.Sprintf("DataType(%s)", d.SqlString())
}

func (d DataType) SqlString() string {
	s := d.Name
	if len(d.Params) > 0 {
		s += "<" + strings.Join(d.Params, ", ") + ">"
	}
	if d.Frozen {
		s = "frozen<" + s + ">"
	}
	return s
}

// ColumnDefinition describes a column added to a table.
type ColumnDefinition struct {
	Name       Identifier
	Type       DataType
	Static     bool
	PrimaryKey bool
}

func (c ColumnDefinition) NodeTag() NodeTag { return T_ColumnDefinition }

func (c ColumnDefinition) String() string {
	return fmt.Sprintf("ColumnDefinition(%s %s)", c.Name.SqlString(), c.Type.SqlString())
}

func (c ColumnDefinition) SqlString() string {
	parts := []string{c.Name.SqlString(), c.Type.SqlString()}
	if c.Static {
		parts = append(parts, "STATIC")
	}
	if c.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	return strings.Join(parts, " ")
}

// ==============================================================================
// WITH ITEMS
// ==============================================================================

// WithItem is one entry of a WITH clause. Items are joined with AND.
type WithItem interface {
	Node
	withItem()
}

// Property is a `name = value` table option. Value is emitted verbatim.
type Property struct {
	Name  string
	Value string
}

func (p *Property) withItem()        {}
func (p *Property) NodeTag() NodeTag { return T_WithItem }
func (p *Property) String() string   { return fmt.Sprintf("Property(%s)", p.Name) }
func (p *Property) SqlString() string {
	return p.Name + " = " + p.Value
}

// OrderColumn is one column in a CLUSTERING ORDER BY clause.
type OrderColumn struct {
	Name       Identifier
	Descending bool
}

func (o OrderColumn) SqlString() string {
	if o.Descending {
		return o.Name.SqlString() + " DESC"
	}
	return o.Name.SqlString() + " ASC"
}

// ClusteringOrder is the CLUSTERING ORDER BY table option.
type ClusteringOrder struct {
	Columns []OrderColumn
}

func (c *ClusteringOrder) withItem()        {}
func (c *ClusteringOrder) NodeTag() NodeTag { return T_WithItem }
func (c *ClusteringOrder) String() string {
	return fmt.Sprintf("ClusteringOrder[%d]", len(c.Columns))
}

func (c *ClusteringOrder) SqlString() string {
	parts := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		parts[i] = col.SqlString()
	}
	return "CLUSTERING ORDER BY (" + strings.Join(parts, ", ") + ")"
}

// IDItem is the `ID = value` table option.
type IDItem struct {
	Value string
}

func (i *IDItem) withItem()         {}
func (i *IDItem) NodeTag() NodeTag  { return T_WithItem }
func (i *IDItem) String() string    { return fmt.Sprintf("IDItem(%s)", i.Value) }
func (i *IDItem) SqlString() string { return "ID = " + i.Value }

// CompactStorage is the COMPACT STORAGE table option.
type CompactStorage struct{}

func (c *CompactStorage) withItem()         {}
func (c *CompactStorage) NodeTag() NodeTag  { return T_WithItem }
func (c *CompactStorage) String() string    { return "CompactStorage" }
func (c *CompactStorage) SqlString() string { return "COMPACT STORAGE" }

// ==============================================================================
// USING TTL / TIMESTAMP AND BATCHES
// ==============================================================================

// TtlTimestamp is the USING clause of a modification statement.
// It renders with a leading space so it can be appended directly.
type TtlTimestamp struct {
	TTL       *uint64
	Timestamp *uint64
}

func (t *TtlTimestamp) NodeTag() NodeTag { return T_TtlTimestamp }

func (t *TtlTimestamp) String() string {
	return fmt.Sprintf("TtlTimestamp(%s)", strings.TrimSpace(t.SqlString()))
}

func (t *TtlTimestamp) SqlString() string {
	var parts []string
	if t.TTL != nil {
		parts = append(parts, "TTL "+strconv.FormatUint(*t.TTL, 10))
	}
	if t.Timestamp != nil {
		parts = append(parts, "TIMESTAMP "+strconv.FormatUint(*t.Timestamp, 10))
	}
	if len(parts) == 0 {
		return ""
	}
	return " USING " + strings.Join(parts, " AND ")
}

// BatchType selects the kind of batch a statement opens.
type BatchType int

const (
	BATCH_LOGGED BatchType = iota
	BATCH_UNLOGGED
	BATCH_COUNTER
)

func (b BatchType) String() string {
	switch b {
	case BATCH_LOGGED:
		return "LOGGED"
	case BATCH_UNLOGGED:
		return "UNLOGGED"
	case BATCH_COUNTER:
		return "COUNTER"
	default:
		return fmt.Sprintf("BatchType(%d)", int(b))
	}
}

// BeginBatch is the BEGIN BATCH prefix of a statement.
// It renders with a trailing space so the statement follows directly.
type BeginBatch struct {
	Type      BatchType
	Timestamp *uint64
}

func (b *BeginBatch) NodeTag() NodeTag { return T_BeginBatch }

func (b *BeginBatch) String() string {
	return fmt.Sprintf("BeginBatch(%s)", b.Type)
}

func (b *BeginBatch) SqlString() string {
	var sb strings.Builder
	sb.WriteString("BEGIN ")
	switch b.Type {
	case BATCH_UNLOGGED:
		sb.WriteString("UNLOGGED ")
	case BATCH_COUNTER:
		sb.WriteString("COUNTER ")
	}
	sb.WriteString("BATCH ")
	if b.Timestamp != nil {
		sb.WriteString("USING TIMESTAMP ")
		sb.WriteString(strconv.FormatUint(*b.Timestamp, 10))
		sb.WriteString(" ")
	}
	return sb.String()
}
