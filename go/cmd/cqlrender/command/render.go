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

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/multigres/cql3/go/cql/ast"
	"github.com/multigres/cql3/go/viperutil"
)

// RenderedStatement is one statement in json output.
type RenderedStatement struct {
	Type string `json:"type"`
	CQL  string `json:"cql"`
}

// RenderedFile is the json output for one document.
type RenderedFile struct {
	File       string              `json:"file"`
	Statements []RenderedStatement `json:"statements"`
}

type renderCmd struct {
	rc    *RenderCommand
	watch viperutil.Value[bool]
}

// AddRenderCommand adds the render subcommand to the root command.
func AddRenderCommand(root *cobra.Command, rc *RenderCommand) {
	rcmd := &renderCmd{
		rc: rc,
		watch: viperutil.Configure(rc.reg, "watch", viperutil.Options[bool]{
			Default:  false,
			FlagName: "watch",
			EnvVars:  []string{"CQL_WATCH"},
		}),
	}

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Print the CQL text of every statement in the given documents",
		Long: `Render decodes each statement document and prints the canonical CQL for
every statement it contains, one statement per line, each terminated by a
semicolon.

--watch observes the files through the operating system and is only
available when documents are read from the OS filesystem.

Examples:
  # Render a document
  cqlrender render schema.yaml

  # Re-render whenever a document changes
  cqlrender render --watch schema.yaml migrations.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: rcmd.run,
	}
	cmd.Flags().BoolP("watch", "w", rcmd.watch.Default(), "Re-render files when they change")
	viperutil.BindFlags(cmd.Flags(), rcmd.watch)
	root.AddCommand(cmd)
}

func (r *renderCmd) run(cmd *cobra.Command, args []string) error {
	watch := r.watch.Get()
	if _, ok := r.rc.fs.(*afero.OsFs); watch && !ok {
		return fmt.Errorf("--watch requires the OS filesystem, documents are read from %s", r.rc.fs.Name())
	}

	out := cmd.OutOrStdout()
	if err := r.rc.renderFiles(out, args); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	return r.rc.watchFiles(cmd.Context(), args, func(file string) {
		if err := r.rc.renderFiles(out, []string{file}); err != nil {
			r.rc.GetLogger().Error("failed to render changed document", "file", file, "error", err)
		}
	})
}

func (rc *RenderCommand) renderFiles(out io.Writer, files []string) error {
	docs, err := rc.loadStatements(files)
	if err != nil {
		return err
	}

	if rc.jsonOutput() {
		rendered := make([]RenderedFile, 0, len(files))
		for _, f := range files {
			rf := RenderedFile{File: f, Statements: []RenderedStatement{}}
			for _, stmt := range docs[f] {
				rf.Statements = append(rf.Statements, RenderedStatement{Type: stmt.StatementType(), CQL: stmt.SqlString()})
			}
			rendered = append(rendered, rf)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rendered)
	}

	for _, f := range files {
		if len(docs[f]) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(out, ast.RenderStatements(docs[f])); err != nil {
			return err
		}
	}
	return nil
}

