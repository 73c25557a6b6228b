// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package document

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/multigres/cql3/go/cql/ast"
	"github.com/multigres/cql3/go/mterrors"
)

// ==============================================================================
// ALTER TABLE
// ==============================================================================

type alterTableDoc struct {
	Table              string        `yaml:"table"`
	Add                []columnDoc   `yaml:"add"`
	Drop               []string      `yaml:"drop"`
	DropCompactStorage bool          `yaml:"drop_compact_storage"`
	Rename             *renameDoc    `yaml:"rename"`
	With               []withItemDoc `yaml:"with"`
}

type columnDoc struct {
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Params     []string `yaml:"params"`
	Frozen     bool     `yaml:"frozen"`
	Static     bool     `yaml:"static"`
	PrimaryKey bool     `yaml:"primary_key"`
}

type renameDoc struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type withItemDoc struct {
	Property        *propertyDoc `yaml:"property"`
	ClusteringOrder []orderDoc   `yaml:"clustering_order"`
	ID              *string      `yaml:"id"`
	CompactStorage  bool         `yaml:"compact_storage"`
}

type propertyDoc struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type orderDoc struct {
	Column string `yaml:"column"`
	Desc   bool   `yaml:"desc"`
}

func (d *alterTableDoc) build(idx int) (*ast.AlterTable, error) {
	if d.Table == "" {
		return nil, mterrors.MT10003.New(idx, "alter_table", "table")
	}

	var ops []ast.AlterTableOperation
	if d.Add != nil {
		cols := make([]ast.ColumnDefinition, 0, len(d.Add))
		for _, c := range d.Add {
			if c.Name == "" || c.Type == "" {
				return nil, mterrors.MT10003.New(idx, "add column", "name and type")
			}
			cols = append(cols, ast.ColumnDefinition{
				Name:       parseIdentifier(c.Name),
				Type:       ast.DataType{Name: c.Type, Params: c.Params, Frozen: c.Frozen},
				Static:     c.Static,
				PrimaryKey: c.PrimaryKey,
			})
		}
		ops = append(ops, &ast.AddColumns{Columns: cols})
	}
	if d.Drop != nil {
		ops = append(ops, &ast.DropColumns{Columns: parseIdentifiers(d.Drop)})
	}
	if d.DropCompactStorage {
		ops = append(ops, &ast.DropCompactStorage{})
	}
	if d.Rename != nil {
		if d.Rename.From == "" || d.Rename.To == "" {
			return nil, mterrors.MT10003.New(idx, "rename", "from and to")
		}
		ops = append(ops, &ast.RenameColumn{From: parseIdentifier(d.Rename.From), To: parseIdentifier(d.Rename.To)})
	}
	if d.With != nil {
		items := make([]ast.WithItem, 0, len(d.With))
		for _, w := range d.With {
			item, err := w.build(idx)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		ops = append(ops, &ast.WithOptions{Items: items})
	}

	if len(ops) != 1 {
		return nil, mterrors.MT10003.New(idx, "alter_table", "exactly one of add, drop, drop_compact_storage, rename, with")
	}
	return ast.NewAlterTable(parseFQName(d.Table), ops[0]), nil
}

func (w withItemDoc) build(idx int) (ast.WithItem, error) {
	var items []ast.WithItem
	if w.Property != nil {
		items = append(items, &ast.Property{Name: w.Property.Name, Value: w.Property.Value})
	}
	if w.ClusteringOrder != nil {
		cols := make([]ast.OrderColumn, len(w.ClusteringOrder))
		for i, o := range w.ClusteringOrder {
			cols[i] = ast.OrderColumn{Name: parseIdentifier(o.Column), Descending: o.Desc}
		}
		items = append(items, &ast.ClusteringOrder{Columns: cols})
	}
	if w.ID != nil {
		items = append(items, &ast.IDItem{Value: *w.ID})
	}
	if w.CompactStorage {
		items = append(items, &ast.CompactStorage{})
	}
	if len(items) != 1 {
		return nil, mterrors.MT10003.New(idx, "with item", "exactly one of property, clustering_order, id, compact_storage")
	}
	return items[0], nil
}

// ==============================================================================
// CREATE INDEX
// ==============================================================================

type createIndexDoc struct {
	IfNotExists bool           `yaml:"if_not_exists"`
	Name        string         `yaml:"name"`
	Table       string         `yaml:"table"`
	Column      indexColumnDoc `yaml:"column"`
}

// indexColumnDoc accepts either a bare column name or a single-key mapping
// `{keys|entries|full: column}`.
type indexColumnDoc struct {
	Kind string
	Name string
}

func (c *indexColumnDoc) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		c.Kind, c.Name = "column", value.Value
		return nil
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("line %d: index column must have exactly one kind", value.Line)
		}
		c.Kind, c.Name = value.Content[0].Value, value.Content[1].Value
		return nil
	default:
		return fmt.Errorf("line %d: index column must be a name or a mapping", value.Line)
	}
}

func (d *createIndexDoc) build(idx int) (*ast.CreateIndex, error) {
	if d.Table == "" {
		return nil, mterrors.MT10003.New(idx, "create_index", "table")
	}
	if d.Column.Name == "" {
		return nil, mterrors.MT10003.New(idx, "create_index", "column")
	}

	col := parseIdentifier(d.Column.Name)
	var column ast.IndexColumnType
	switch strings.ToLower(d.Column.Kind) {
	case "column":
		column = &ast.IndexColumn{Name: col}
	case "keys":
		column = &ast.IndexKeys{Name: col}
	case "entries":
		column = &ast.IndexEntries{Name: col}
	case "full":
		column = &ast.IndexFull{Name: col}
	default:
		return nil, mterrors.MT10002.New(idx, "index column", d.Column.Kind)
	}

	stmt := ast.NewCreateIndex(parseFQName(d.Table), column)
	stmt.IfNotExists = d.IfNotExists
	if d.Name != "" {
		name := parseIdentifier(d.Name)
		stmt.Name = &name
	}
	return stmt, nil
}

// ==============================================================================
// INSERT
// ==============================================================================

type insertDoc struct {
	Batch       *batchDoc   `yaml:"batch"`
	Table       string      `yaml:"table"`
	Columns     []string    `yaml:"columns"`
	Values      []yaml.Node `yaml:"values"`
	JSON        *string     `yaml:"json"`
	TTL         *uint64     `yaml:"ttl"`
	Timestamp   *uint64     `yaml:"timestamp"`
	IfNotExists bool        `yaml:"if_not_exists"`
}

type batchDoc struct {
	Type      string  `yaml:"type"`
	Timestamp *uint64 `yaml:"timestamp"`
}

func (d *insertDoc) build(idx int) (*ast.Insert, error) {
	if d.Table == "" {
		return nil, mterrors.MT10003.New(idx, "insert", "table")
	}

	var values ast.InsertValues
	switch {
	case d.Values != nil && d.JSON != nil:
		return nil, mterrors.MT10002.New(idx, "insert values", "values+json")
	case d.JSON != nil:
		values = &ast.JSONValues{Text: *d.JSON}
	case d.Values != nil:
		ops, err := buildOperands(idx, d.Values)
		if err != nil {
			return nil, err
		}
		values = &ast.ValuesList{Operands: ops}
	default:
		return nil, mterrors.MT10003.New(idx, "insert", "values or json")
	}

	stmt := ast.NewInsert(parseFQName(d.Table), parseIdentifiers(d.Columns), values)
	stmt.IfNotExists = d.IfNotExists
	if d.TTL != nil || d.Timestamp != nil {
		stmt.UsingTTL = &ast.TtlTimestamp{TTL: d.TTL, Timestamp: d.Timestamp}
	}
	if d.Batch != nil {
		bt, err := parseBatchType(idx, d.Batch.Type)
		if err != nil {
			return nil, err
		}
		stmt.BeginBatch = &ast.BeginBatch{Type: bt, Timestamp: d.Batch.Timestamp}
	}
	return stmt, nil
}

func parseBatchType(idx int, s string) (ast.BatchType, error) {
	switch strings.ToLower(s) {
	case "", "logged":
		return ast.BATCH_LOGGED, nil
	case "unlogged":
		return ast.BATCH_UNLOGGED, nil
	case "counter":
		return ast.BATCH_COUNTER, nil
	default:
		return 0, mterrors.MT10002.New(idx, "batch", s)
	}
}
