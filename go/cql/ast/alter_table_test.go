package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlterTableOperationSqlString(t *testing.T) {
	tests := []struct {
		name     string
		op       AlterTableOperation
		expected string
	}{
		{
			name: "add single column",
			op: &AddColumns{Columns: []ColumnDefinition{
				{Name: NewIdentifier("a"), Type: NewDataType("int")},
			}},
			expected: "ADD a int",
		},
		{
			name: "add multiple columns",
			op: &AddColumns{Columns: []ColumnDefinition{
				{Name: NewIdentifier("a"), Type: NewDataType("int")},
				{Name: NewIdentifier("tags"), Type: NewDataType("set", "text")},
				{Name: NewQuotedIdentifier("Owner"), Type: NewDataType("text"), Static: true},
			}},
			expected: `ADD a int, tags set<text>, "Owner" text STATIC`,
		},
		{
			name:     "add empty list",
			op:       &AddColumns{},
			expected: "ADD ",
		},
		{
			name:     "drop columns",
			op:       &DropColumns{Columns: []Identifier{NewIdentifier("a"), NewIdentifier("b")}},
			expected: "DROP a, b",
		},
		{
			name:     "drop single column",
			op:       &DropColumns{Columns: []Identifier{NewIdentifier("a")}},
			expected: "DROP a",
		},
		{
			name:     "drop compact storage",
			op:       &DropCompactStorage{},
			expected: "DROP COMPACT STORAGE",
		},
		{
			name:     "rename",
			op:       &RenameColumn{From: NewIdentifier("a"), To: NewIdentifier("b")},
			expected: "RENAME a TO b",
		},
		{
			name:     "rename quoted",
			op:       &RenameColumn{From: NewQuotedIdentifier("Old"), To: NewQuotedIdentifier("New")},
			expected: `RENAME "Old" TO "New"`,
		},
		{
			name: "with items",
			op: &WithOptions{Items: []WithItem{
				&Property{Name: "comment", Value: "'users'"},
				&Property{Name: "gc_grace_seconds", Value: "3600"},
			}},
			expected: "WITH comment = 'users' AND gc_grace_seconds = 3600",
		},
		{
			name: "with mixed items",
			op: &WithOptions{Items: []WithItem{
				&ClusteringOrder{Columns: []OrderColumn{
					{Name: NewIdentifier("ts"), Descending: true},
					{Name: NewIdentifier("id")},
				}},
				&IDItem{Value: "5a1c395e-b41f-11e5-9f22-ba0be0483c18"},
				&CompactStorage{},
			}},
			expected: "WITH CLUSTERING ORDER BY (ts DESC, id ASC) AND ID = 5a1c395e-b41f-11e5-9f22-ba0be0483c18 AND COMPACT STORAGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.op.SqlString())
			assert.Equal(t, T_AlterTableOperation, tt.op.NodeTag())
			// rendering is pure
			assert.Equal(t, tt.op.SqlString(), tt.op.SqlString())
		})
	}
}

func TestAlterTableSqlString(t *testing.T) {
	stmt := NewAlterTable(NewQualifiedName("ks", "users"), &RenameColumn{
		From: NewIdentifier("a"),
		To:   NewIdentifier("b"),
	})

	assert.Equal(t, "RENAME a TO b", stmt.OperationSqlString())
	assert.Equal(t, "ALTER TABLE ks.users RENAME a TO b", stmt.SqlString())
	assert.Equal(t, "ALTER TABLE", stmt.StatementType())
	assert.Equal(t, T_AlterTable, stmt.NodeTag())
	assert.Contains(t, stmt.String(), "ks.users")
}
