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

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Version is the cqlrender release.
const Version = "0.1.0"

// AddConfigCommand adds the config subcommand to the root command.
func AddConfigCommand(root *cobra.Command, rc *RenderCommand) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Config prints the settings cqlrender resolved from defaults, the config file,
environment variables and flags. The output is a valid config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := rc.Settings()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(settings)
			if err != nil {
				return fmt.Errorf("failed to encode settings: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	root.AddCommand(cmd)
}

// Settings returns the resolved configuration.
func (rc *RenderCommand) Settings() (*Settings, error) {
	var s Settings
	if err := rc.reg.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}

// AddVersionCommand adds the version subcommand to the root command.
func AddVersionCommand(root *cobra.Command, rc *RenderCommand) {
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the cqlrender version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "cqlrender %s\n", Version)
			return err
		},
	})
}
