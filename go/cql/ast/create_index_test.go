package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexColumnTypeSqlString(t *testing.T) {
	c := NewIdentifier("c")
	tests := []struct {
		column   IndexColumnType
		expected string
	}{
		{&IndexColumn{Name: c}, "c"},
		{&IndexKeys{Name: c}, "KEYS( c )"},
		{&IndexEntries{Name: c}, "ENTRIES( c )"},
		{&IndexFull{Name: c}, "FULL( c )"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.column.SqlString())
			assert.Equal(t, c, tt.column.Column())
		})
	}
}

func TestCreateIndexSqlString(t *testing.T) {
	idx := NewIdentifier("idx")
	table := NewFQName("t")
	c := NewIdentifier("c")

	tests := []struct {
		name     string
		stmt     *CreateIndex
		expected string
	}{
		{
			name:     "bare",
			stmt:     &CreateIndex{Table: table, Column: &IndexColumn{Name: c}},
			expected: "CREATE INDEX ON t( c )",
		},
		{
			name:     "if not exists without name",
			stmt:     &CreateIndex{IfNotExists: true, Table: table, Column: &IndexKeys{Name: c}},
			expected: "CREATE INDEX IF NOT EXISTS ON t( KEYS( c ) )",
		},
		{
			name:     "named",
			stmt:     &CreateIndex{Name: &idx, Table: table, Column: &IndexFull{Name: c}},
			expected: "CREATE INDEX idx ON t( FULL( c ) )",
		},
		{
			name:     "named with if not exists",
			stmt:     &CreateIndex{IfNotExists: true, Name: &idx, Table: table, Column: &IndexEntries{Name: c}},
			expected: "CREATE INDEX IF NOT EXISTS idx ON t( ENTRIES( c ) )",
		},
		{
			name:     "qualified table",
			stmt:     &CreateIndex{Table: NewQualifiedName("ks", "t"), Column: &IndexColumn{Name: NewQuotedIdentifier("Col")}},
			expected: `CREATE INDEX ON ks.t( "Col" )`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.stmt.SqlString()
			assert.Equal(t, tt.expected, got)
			assert.NotContains(t, got, "  ")
			assert.Equal(t, got, tt.stmt.SqlString())
		})
	}
}

func TestNewCreateIndex(t *testing.T) {
	stmt := NewCreateIndex(NewFQName("t"), &IndexColumn{Name: NewIdentifier("c")})
	assert.False(t, stmt.IfNotExists)
	assert.Nil(t, stmt.Name)
	assert.Equal(t, "CREATE INDEX", stmt.StatementType())
	assert.Equal(t, "CreateIndex(<default> on t)", stmt.String())
}
