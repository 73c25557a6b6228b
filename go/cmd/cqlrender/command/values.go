// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/multigres/cql3/go/cql/ast"
)

// ColumnValue is one column assignment in json output.
type ColumnValue struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// InsertValues is the json output for one INSERT statement.
type InsertValues struct {
	File      string        `json:"file"`
	Statement int           `json:"statement"`
	Table     string        `json:"table"`
	Values    []ColumnValue `json:"values"`
}

// AddValuesCommand adds the values subcommand to the root command.
func AddValuesCommand(root *cobra.Command, rc *RenderCommand) {
	cmd := &cobra.Command{
		Use:   "values FILE...",
		Short: "Print the column to value mapping of every INSERT statement",
		Long: `Values prints, for each INSERT statement in the given documents, the value
assigned to each column, ordered by column name.

JSON inserts and inserts whose column and value counts differ have no column
values; they are listed with an empty mapping.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rc.printValues(cmd.OutOrStdout(), args)
		},
	}
	root.AddCommand(cmd)
}

func (rc *RenderCommand) collectValues(files []string) ([]InsertValues, error) {
	docs, err := rc.loadStatements(files)
	if err != nil {
		return nil, err
	}

	var result []InsertValues
	for _, f := range files {
		for i, stmt := range docs[f] {
			insert, ok := stmt.(*ast.Insert)
			if !ok {
				continue
			}
			vm := insert.ValueMap()
			if vm.Len() == 0 && len(insert.Columns) > 0 {
				rc.GetLogger().Warn("insert has no column values", "file", f, "statement", i, "values", insert.Values.String())
			}
			iv := InsertValues{File: f, Statement: i, Table: insert.Table.SqlString(), Values: []ColumnValue{}}
			vm.Range(func(column ast.Identifier, value ast.Operand) bool {
				iv.Values = append(iv.Values, ColumnValue{Column: column.SqlString(), Value: value.SqlString()})
				return true
			})
			result = append(result, iv)
		}
	}
	return result, nil
}

func (rc *RenderCommand) printValues(out io.Writer, files []string) error {
	inserts, err := rc.collectValues(files)
	if err != nil {
		return err
	}

	if rc.jsonOutput() {
		if inserts == nil {
			inserts = []InsertValues{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(inserts)
	}

	for _, iv := range inserts {
		if _, err := fmt.Fprintf(out, "%s#%d %s\n", iv.File, iv.Statement, iv.Table); err != nil {
			return err
		}
		for _, cv := range iv.Values {
			if _, err := fmt.Fprintf(out, "  %s = %s\n", cv.Column, cv.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
