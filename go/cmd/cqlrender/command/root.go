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
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/multigres/cql3/go/cql/ast"
	"github.com/multigres/cql3/go/cql/document"
	"github.com/multigres/cql3/go/servenv"
	"github.com/multigres/cql3/go/viperutil"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

// RenderCommand holds the configuration shared by the cqlrender subcommands.
type RenderCommand struct {
	reg          *viperutil.Registry
	outputFormat viperutil.Value[string]
	vc           *viperutil.ViperConfig
	lg           *servenv.Logger
	fs           afero.Fs
}

// Settings is the resolved configuration, as printed by the config command.
type Settings struct {
	OutputFormat string `mapstructure:"output-format" yaml:"output-format"`
	Watch        bool   `mapstructure:"watch" yaml:"watch"`
	LogLevel     string `mapstructure:"log-level" yaml:"log-level"`
	LogFormat    string `mapstructure:"log-format" yaml:"log-format"`
	LogOutput    string `mapstructure:"log-output" yaml:"log-output"`
}

// GetRootCommand creates and returns the root command for cqlrender with all
// subcommands. Statement documents are read from fs.
func GetRootCommand(fs afero.Fs) (*cobra.Command, *RenderCommand) {
	reg := viperutil.NewRegistry()
	rc := &RenderCommand{
		reg: reg,
		outputFormat: viperutil.Configure(reg, "output-format", viperutil.Options[string]{
			Default:  OutputText,
			FlagName: "output-format",
			EnvVars:  []string{"CQL_OUTPUT_FORMAT"},
		}),
		vc: viperutil.NewViperConfig(reg),
		lg: servenv.NewLogger(reg),
		fs: fs,
	}

	root := &cobra.Command{
		Use:   "cqlrender",
		Short: "Render CQL statement documents",
		Long: `cqlrender reads statement documents (YAML or JSON) describing ALTER TABLE,
CREATE INDEX and INSERT statements and prints their canonical CQL text.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := rc.vc.LoadConfig(rc.reg); err != nil {
				return err
			}
			rc.lg.SetupLogging()
			return rc.validateGlobalFlags()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rc.lg.Close()
		},
	}

	root.PersistentFlags().StringP("output-format", "o", rc.outputFormat.Default(), "Output format (text, json)")
	rc.vc.RegisterFlags(root.PersistentFlags())
	rc.lg.RegisterFlags(root.PersistentFlags())
	viperutil.BindFlags(root.PersistentFlags(), rc.outputFormat)

	AddRenderCommand(root, rc)
	AddValuesCommand(root, rc)
	AddConfigCommand(root, rc)
	AddVersionCommand(root, rc)

	return root, rc
}

func (rc *RenderCommand) validateGlobalFlags() error {
	switch strings.ToLower(rc.outputFormat.Get()) {
	case OutputText, OutputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", rc.outputFormat.Get(), OutputText, OutputJSON)
	}
}

// GetLogger returns the configured logger instance
func (rc *RenderCommand) GetLogger() *slog.Logger {
	return rc.lg.GetLogger()
}

func (rc *RenderCommand) jsonOutput() bool {
	return strings.ToLower(rc.outputFormat.Get()) == OutputJSON
}

// loadStatements decodes every file, in argument order.
func (rc *RenderCommand) loadStatements(files []string) (map[string][]ast.Statement, error) {
	out := make(map[string][]ast.Statement, len(files))
	for _, f := range files {
		stmts, err := document.LoadFile(rc.fs, f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		rc.GetLogger().Debug("loaded statement document", "file", f, "statements", len(stmts))
		out[f] = stmts
	}
	return out, nil
}
