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

// Package document decodes statement documents into CQL AST trees.
//
// A document is YAML (or JSON) with a top-level `statements` list. Each entry
// holds exactly one of `alter_table`, `create_index` or `insert`:
//
//	statements:
//	  - create_index:
//	      if_not_exists: true
//	      name: idx
//	      table: ks.users
//	      column: {keys: attrs}
//	  - insert:
//	      table: users
//	      columns: [id, name]
//	      values: [1, 'alice']
//	      if_not_exists: true
//
// Identifiers written in double quotes become quoted identifiers.
package document

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/multigres/cql3/go/cql/ast"
	"github.com/multigres/cql3/go/mterrors"
)

type fileDoc struct {
	Statements []statementDoc `yaml:"statements"`
}

type statementDoc struct {
	AlterTable  *alterTableDoc  `yaml:"alter_table"`
	CreateIndex *createIndexDoc `yaml:"create_index"`
	Insert      *insertDoc      `yaml:"insert"`
}

// LoadFile reads and decodes the document at path.
func LoadFile(fs afero.Fs, path string) ([]ast.Statement, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, mterrors.MT10004.Wrap(err, path)
	}
	return Parse(data)
}

// Parse decodes a document into statements, in document order.
func Parse(data []byte) ([]ast.Statement, error) {
	var doc fileDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, mterrors.MT10001.Wrap(err, "decode failed")
	}

	stmts := make([]ast.Statement, 0, len(doc.Statements))
	for i, sd := range doc.Statements {
		stmt, err := sd.build(i)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (sd statementDoc) build(idx int) (ast.Statement, error) {
	var kinds []string
	if sd.AlterTable != nil {
		kinds = append(kinds, "alter_table")
	}
	if sd.CreateIndex != nil {
		kinds = append(kinds, "create_index")
	}
	if sd.Insert != nil {
		kinds = append(kinds, "insert")
	}
	switch len(kinds) {
	case 0:
		return nil, mterrors.MT10003.New(idx, "statement", "one of alter_table, create_index, insert")
	case 1:
	default:
		return nil, mterrors.MT10002.New(idx, "statement", strings.Join(kinds, "+"))
	}

	switch {
	case sd.AlterTable != nil:
		return sd.AlterTable.build(idx)
	case sd.CreateIndex != nil:
		return sd.CreateIndex.build(idx)
	default:
		return sd.Insert.build(idx)
	}
}

// ==============================================================================
// NAMES
// ==============================================================================

// parseIdentifier turns `name` into an unquoted identifier and `"Name"` into a
// quoted one, undoubling embedded quotes.
func parseIdentifier(s string) ast.Identifier {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return ast.NewQuotedIdentifier(strings.ReplaceAll(s[1:len(s)-1], `""`, `"`))
	}
	return ast.NewIdentifier(s)
}

func parseIdentifiers(names []string) []ast.Identifier {
	out := make([]ast.Identifier, len(names))
	for i, n := range names {
		out[i] = parseIdentifier(n)
	}
	return out
}

// parseFQName splits `keyspace.table` on the first dot outside double quotes.
func parseFQName(s string) ast.FQName {
	inQuotes := false
	for i, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == '.' && !inQuotes:
			ks := parseIdentifier(s[:i])
			return ast.FQName{Keyspace: &ks, Name: parseIdentifier(s[i+1:])}
		}
	}
	return ast.FQName{Name: parseIdentifier(s)}
}
