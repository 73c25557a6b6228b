// Package ast provides CQL AST node definitions and their canonical text rendering
// for ALTER TABLE, CREATE INDEX and INSERT statements.
package ast

import (
	"fmt"
	"strings"
)

// NodeTag represents the type of an AST node.
type NodeTag int

// NodeTag constants for every node kind in the CQL AST.
const (
	T_Invalid NodeTag = iota

	// Statements
	T_AlterTable
	T_CreateIndex
	T_Insert

	// Statement clauses
	T_AlterTableOperation
	T_IndexColumnType
	T_InsertValues
	T_BeginBatch
	T_TtlTimestamp
	T_WithItem

	// Shared vocabulary
	T_Identifier
	T_FQName
	T_ColumnDefinition
	T_DataType
	T_Operand
)

// String returns the string representation of a NodeTag.
// Used for debugging and error reporting.
func (nt NodeTag) String() string {
	switch nt {
	case T_Invalid:
		return "T_Invalid"
	case T_AlterTable:
		return "T_AlterTable"
	case T_CreateIndex:
		return "T_CreateIndex"
	case T_Insert:
		return "T_Insert"
	case T_AlterTableOperation:
		return "T_AlterTableOperation"
	case T_IndexColumnType:
		return "T_IndexColumnType"
	case T_InsertValues:
		return "T_InsertValues"
	case T_BeginBatch:
		return "T_BeginBatch"
	case T_TtlTimestamp:
		return "T_TtlTimestamp"
	case T_WithItem:
		return "T_WithItem"
	case T_Identifier:
		return "T_Identifier"
	case T_FQName:
		return "T_FQName"
	case T_ColumnDefinition:
		return "T_ColumnDefinition"
	case T_DataType:
		return "T_DataType"
	case T_Operand:
		return "T_Operand"
	default:
		return fmt.Sprintf("NodeTag(%d)", int(nt))
	}
}

// Node is the base interface for all CQL AST nodes.
//
// Nodes are immutable once built: rendering and analysis only read them, and
// every node owns its children exclusively, so a tree may be shared read-only
// across goroutines without coordination.
type Node interface {
	// NodeTag returns the type tag for this node
	NodeTag() NodeTag

	// String returns a string representation of the node (for debugging)
	String() string

	// SqlString returns the CQL text for the node.
	SqlString() string
}

// Statement represents the base interface for all top-level CQL statements.
type Statement interface {
	Node
	StatementType() string
}

// NodeWalker is a function type for walking the AST.
// It receives a node and returns whether to descend into its children.
type NodeWalker func(Node) bool

// WalkNodes recursively walks all nodes in an AST depth-first, calling the
// walker function on each node before its children.
func WalkNodes(node Node, walker NodeWalker) {
	if node == nil || !walker(node) {
		return
	}
	for _, child := range children(node) {
		if child != nil {
			WalkNodes(child, walker)
		}
	}
}

// FindNodes finds all nodes of a specific type in an AST.
func FindNodes(root Node, targetTag NodeTag) []Node {
	var found []Node
	WalkNodes(root, func(node Node) bool {
		if node.NodeTag() == targetTag {
			found = append(found, node)
		}
		return true
	})
	return found
}

// children returns the direct child nodes of n in source order.
func children(n Node) []Node {
	switch n := n.(type) {
	case *AlterTable:
		return []Node{n.Name, n.Operation}
	case *AddColumns:
		out := make([]Node, 0, len(n.Columns))
		for _, c := range n.Columns {
			out = append(out, c)
		}
		return out
	case *DropColumns:
		return identifierNodes(n.Columns)
	case *RenameColumn:
		return []Node{n.From, n.To}
	case *WithOptions:
		out := make([]Node, 0, len(n.Items))
		for _, item := range n.Items {
			out = append(out, item)
		}
		return out
	case *CreateIndex:
		out := []Node{}
		if n.Name != nil {
			out = append(out, *n.Name)
		}
		return append(out, n.Table, n.Column)
	case *IndexColumn:
		return []Node{n.Name}
	case *IndexKeys:
		return []Node{n.Name}
	case *IndexEntries:
		return []Node{n.Name}
	case *IndexFull:
		return []Node{n.Name}
	case *Insert:
		out := []Node{}
		if n.BeginBatch != nil {
			out = append(out, n.BeginBatch)
		}
		out = append(out, n.Table)
		out = append(out, identifierNodes(n.Columns)...)
		out = append(out, n.Values)
		if n.UsingTTL != nil {
			out = append(out, n.UsingTTL)
		}
		return out
	case *ValuesList:
		out := make([]Node, 0, len(n.Operands))
		for _, op := range n.Operands {
			out = append(out, op)
		}
		return out
	case FQName:
		if n.Keyspace != nil {
			return []Node{*n.Keyspace, n.Name}
		}
		return []Node{n.Name}
	case ColumnDefinition:
		return []Node{n.Name, n.Type}
	case *ColumnOperand:
		return []Node{n.Name}
	case *FuncCall:
		out := make([]Node, 0, len(n.Args))
		for _, a := range n.Args {
			out = append(out, a)
		}
		return out
	case *Tuple:
		out := make([]Node, 0, len(n.Elements))
		for _, e := range n.Elements {
			out = append(out, e)
		}
		return out
	case *Collection:
		out := make([]Node, 0, len(n.Elements)*2)
		for _, e := range n.Elements {
			if e.Key != nil {
				out = append(out, e.Key)
			}
			out = append(out, e.Value)
		}
		return out
	}
	return nil
}

func identifierNodes(ids []Identifier) []Node {
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, id)
	}
	return out
}

// RenderStatements renders a statement list, each statement terminated by a
// semicolon and separated by a newline.
func RenderStatements(stmts []Statement) string {
	var b strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(stmt.SqlString())
		b.WriteString(";")
	}
	return b.String()
}
