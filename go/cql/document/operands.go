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
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/multigres/cql3/go/cql/ast"
	"github.com/multigres/cql3/go/mterrors"
)

// Operand spellings:
//
//	1, 0x1f, 2.5, .inf      numbers, re-spelled as CQL literals (31, Infinity)
//	true                    boolean literal
//	'text'                  any YAML string becomes a CQL string literal
//	2024-01-02              timestamps become string literals
//	null / ~                NULL
//	{const: "0x0a"}         raw literal text, emitted verbatim
//	{param: ""} {param: id} bind markers ? and :id
//	{column: name}          column reference
//	{func: now, args: []}   function call
//	{tuple: [...]} {list: [...]} {set: [...]}
//	{map: [{key: k, value: v}]}

func buildOperands(idx int, nodes []yaml.Node) ([]ast.Operand, error) {
	ops := make([]ast.Operand, 0, len(nodes))
	for i := range nodes {
		op, err := buildOperand(idx, &nodes[i])
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func buildOperand(idx int, n *yaml.Node) (ast.Operand, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		switch tag := n.ShortTag(); tag {
		case "!!null":
			return &ast.Null{}, nil
		case "!!str":
			return ast.NewStringConst(n.Value), nil
		case "!!bool":
			return ast.NewConst(strings.ToLower(n.Value)), nil
		case "!!timestamp":
			return ast.NewStringConst(n.Value), nil
		case "!!int", "!!float":
			text, err := numericLiteral(n)
			if err != nil {
				return nil, mterrors.MT10002.New(idx, "numeric literal", n.Value)
			}
			return ast.NewConst(text), nil
		default:
			return nil, mterrors.MT10002.New(idx, "scalar tag", tag)
		}
	case yaml.MappingNode:
		return buildTaggedOperand(idx, n)
	default:
		return nil, mterrors.MT10002.New(idx, "operand", yamlKindName(n.Kind))
	}
}

var decimalDigits = regexp.MustCompile(`^[-+]?[0-9]+$`)

// numericLiteral re-spells a YAML number in CQL syntax. YAML accepts forms
// such as 0o17, 0b101, 1_000 and .inf that CQL does not.
func numericLiteral(n *yaml.Node) (string, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return "", err
	}
	switch v := v.(type) {
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		switch {
		case math.IsInf(v, 1):
			return "Infinity", nil
		case math.IsInf(v, -1):
			return "-Infinity", nil
		case math.IsNaN(v):
			return "NaN", nil
		}
		// Integers too wide for 64 bits resolve as floats; keep every digit
		// so varint values survive.
		if plain := strings.ReplaceAll(n.Value, "_", ""); math.Abs(v) >= 1<<63 && decimalDigits.MatchString(plain) {
			return strings.TrimPrefix(plain, "+"), nil
		}
		text := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(text, ".e") {
			text += ".0"
		}
		return text, nil
	default:
		return "", fmt.Errorf("unexpected numeric value %T", v)
	}
}

func buildTaggedOperand(idx int, n *yaml.Node) (ast.Operand, error) {
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	var kinds []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		fields[key] = resolveAlias(n.Content[i+1])
		if key != "args" {
			kinds = append(kinds, key)
		}
	}
	switch len(kinds) {
	case 0:
		return nil, mterrors.MT10003.New(idx, "operand", "one of const, param, column, func, tuple, list, set, map")
	case 1:
	default:
		return nil, mterrors.MT10002.New(idx, "operand", strings.Join(kinds, "+"))
	}
	kind := kinds[0]
	body := fields[kind]
	if _, hasArgs := fields["args"]; hasArgs && kind != "func" {
		return nil, mterrors.MT10002.New(idx, "operand", kind+"+args")
	}

	switch kind {
	case "const":
		return ast.NewConst(body.Value), nil
	case "param":
		return &ast.Param{Name: body.Value}, nil
	case "column":
		return &ast.ColumnOperand{Name: parseIdentifier(body.Value)}, nil
	case "func":
		var args []ast.Operand
		if argNode, ok := fields["args"]; ok {
			var err error
			if args, err = buildOperandSeq(idx, argNode); err != nil {
				return nil, err
			}
		}
		return &ast.FuncCall{Name: body.Value, Args: args}, nil
	case "tuple":
		elems, err := buildOperandSeq(idx, body)
		if err != nil {
			return nil, err
		}
		return &ast.Tuple{Elements: elems}, nil
	case "list", "set":
		elems, err := buildOperandSeq(idx, body)
		if err != nil {
			return nil, err
		}
		coll := &ast.Collection{Kind: ast.COLLECTION_LIST}
		if kind == "set" {
			coll.Kind = ast.COLLECTION_SET
		}
		for _, e := range elems {
			coll.Elements = append(coll.Elements, ast.CollectionElement{Value: e})
		}
		return coll, nil
	case "map":
		return buildMap(idx, body)
	default:
		return nil, mterrors.MT10002.New(idx, "operand", kind)
	}
}

// resolveAlias follows *name references to the anchored node.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func buildOperandSeq(idx int, n *yaml.Node) ([]ast.Operand, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.SequenceNode {
		return nil, mterrors.MT10002.New(idx, "operand list", yamlKindName(n.Kind))
	}
	ops := make([]ast.Operand, 0, len(n.Content))
	for _, c := range n.Content {
		op, err := buildOperand(idx, c)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func buildMap(idx int, n *yaml.Node) (ast.Operand, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.SequenceNode {
		return nil, mterrors.MT10002.New(idx, "map literal", yamlKindName(n.Kind))
	}
	coll := &ast.Collection{Kind: ast.COLLECTION_MAP}
	for _, entry := range n.Content {
		var kv struct {
			Key   yaml.Node `yaml:"key"`
			Value yaml.Node `yaml:"value"`
		}
		if err := entry.Decode(&kv); err != nil {
			return nil, mterrors.MT10001.Wrap(err, "map entry")
		}
		if kv.Key.Kind == 0 || kv.Value.Kind == 0 {
			return nil, mterrors.MT10003.New(idx, "map entry", "key and value")
		}
		k, err := buildOperand(idx, &kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := buildOperand(idx, &kv.Value)
		if err != nil {
			return nil, err
		}
		coll.Elements = append(coll.Elements, ast.CollectionElement{Key: k, Value: v})
	}
	return coll, nil
}

func yamlKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty"
	}
}
