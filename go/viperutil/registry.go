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

package viperutil

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Registry holds the viper instance backing a command's configuration.
// Each command creates its own registry so tests and subcommands do not share
// state through a global viper.
type Registry struct {
	static *viper.Viper
}

// NewRegistry creates a new isolated configuration registry.
//
// Example usage:
//
//	reg := viperutil.NewRegistry()
//	format := viperutil.Configure(reg, "output-format", viperutil.Options[string]{
//	    Default:  "text",
//	    FlagName: "output-format",
//	})
func NewRegistry() *Registry {
	return &Registry{static: viper.New()}
}

// AllSettings returns every resolved key with its current value.
func (reg *Registry) AllSettings() map[string]any {
	return reg.static.AllSettings()
}

// ConfigFileUsed returns the config file loaded into the registry, if any.
func (reg *Registry) ConfigFileUsed() string {
	return reg.static.ConfigFileUsed()
}

// Decode copies the resolved settings into out, matching keys against
// `mapstructure` struct tags. String values are converted to the field types.
func (reg *Registry) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(reg.static.AllSettings())
}
