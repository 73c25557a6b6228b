package ast

import (
	"strings"

	"github.com/lib/pq"
)

// ==============================================================================
// CQL FORMATTING HELPERS
// ==============================================================================

// QuoteIdentifier wraps name in double quotes, doubling any embedded quotes.
// CQL quoted identifiers share the PostgreSQL quoting rules.
func QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

// QuoteStringLiteral quotes a string literal for CQL.
// Single quotes are escaped by doubling them.
func QuoteStringLiteral(value string) string {
	escaped := strings.ReplaceAll(value, `'`, `''`)
	return `'` + escaped + `'`
}

// joinNodes renders each node and joins the results with sep.
// An empty list renders as the empty string.
func joinNodes[T Node](nodes []T, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.SqlString()
	}
	return strings.Join(parts, sep)
}

// FormatCommaList renders nodes separated by ", ".
func FormatCommaList[T Node](nodes []T) string {
	return joinNodes(nodes, ", ")
}
