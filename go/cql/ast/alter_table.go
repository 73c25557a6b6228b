package ast

import (
	"fmt"
)

// ==============================================================================
// ALTER TABLE
// ==============================================================================

// AlterTable represents an ALTER TABLE statement.
type AlterTable struct {
	Name      FQName              // table being altered
	Operation AlterTableOperation // the single alteration to apply
}

// NewAlterTable creates a new AlterTable node.
func NewAlterTable(name FQName, operation AlterTableOperation) *AlterTable {
	return &AlterTable{Name: name, Operation: operation}
}

func (a *AlterTable) NodeTag() NodeTag { return T_AlterTable }

func (a *AlterTable) StatementType() string { return "ALTER TABLE" }

func (a *AlterTable) String() string {
	return fmt.Sprintf("AlterTable(%s, %s)", a.Name.SqlString(), a.Operation)
}

// OperationSqlString renders only the alteration clause. The table name is
// left to the composer of the full statement.
func (a *AlterTable) OperationSqlString() string {
	return a.Operation.SqlString()
}

// SqlString composes the full statement: ALTER TABLE <name> <operation>.
func (a *AlterTable) SqlString() string {
	return "ALTER TABLE " + a.Name.SqlString() + " " + a.OperationSqlString()
}

// AlterTableOperation is one of AddColumns, DropColumns, DropCompactStorage,
// RenameColumn or WithOptions.
type AlterTableOperation interface {
	Node
	alterTableOperation()
}

// AddColumns adds column definitions to the table.
type AddColumns struct {
	Columns []ColumnDefinition
}

func (o *AddColumns) alterTableOperation() {}
func (o *AddColumns) NodeTag() NodeTag     { return T_AlterTableOperation }
func (o *AddColumns) String() string       { return fmt.Sprintf("Add[%d]", len(o.Columns)) }

// SqlString renders ADD followed by the column definitions. An empty list
// still renders the keyword and its trailing space.
func (o *AddColumns) SqlString() string {
	return "ADD " + FormatCommaList(o.Columns)
}

// DropColumns drops columns from the table.
type DropColumns struct {
	Columns []Identifier
}

func (o *DropColumns) alterTableOperation() {}
func (o *DropColumns) NodeTag() NodeTag     { return T_AlterTableOperation }
func (o *DropColumns) String() string       { return fmt.Sprintf("DropColumns[%d]", len(o.Columns)) }
func (o *DropColumns) SqlString() string {
	return "DROP " + FormatCommaList(o.Columns)
}

// DropCompactStorage removes the COMPACT STORAGE option.
type DropCompactStorage struct{}

func (o *DropCompactStorage) alterTableOperation() {}
func (o *DropCompactStorage) NodeTag() NodeTag     { return T_AlterTableOperation }
func (o *DropCompactStorage) String() string       { return "DropCompactStorage" }
func (o *DropCompactStorage) SqlString() string    { return "DROP COMPACT STORAGE" }

// RenameColumn renames a column.
type RenameColumn struct {
	From Identifier
	To   Identifier
}

func (o *RenameColumn) alterTableOperation() {}
func (o *RenameColumn) NodeTag() NodeTag     { return T_AlterTableOperation }
func (o *RenameColumn) String() string {
	return fmt.Sprintf("Rename(%s, %s)", o.From.SqlString(), o.To.SqlString())
}

func (o *RenameColumn) SqlString() string {
	return "RENAME " + o.From.SqlString() + " TO " + o.To.SqlString()
}

// WithOptions sets table options.
type WithOptions struct {
	Items []WithItem
}

func (o *WithOptions) alterTableOperation() {}
func (o *WithOptions) NodeTag() NodeTag     { return T_AlterTableOperation }
func (o *WithOptions) String() string       { return fmt.Sprintf("With[%d]", len(o.Items)) }
func (o *WithOptions) SqlString() string {
	return "WITH " + joinNodes(o.Items, " AND ")
}
