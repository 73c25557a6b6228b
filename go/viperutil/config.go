// Copyright 2023 The Vitess Authors.
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
//
// Modifications Copyright 2025 Supabase, Inc.

package viperutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type ViperConfig struct {
	configPaths                Value[[]string]
	configType                 Value[string]
	configName                 Value[string]
	configFile                 Value[string]
	configFileNotFoundHandling Value[ConfigFileNotFoundHandling]
}

func NewViperConfig(reg *Registry) *ViperConfig {
	return &ViperConfig{
		configPaths: Configure(reg, "config.paths", Options[[]string]{
			Default:  []string{"."},
			EnvVars:  []string{"CQL_CONFIG_PATH"},
			FlagName: "config-path",
		}),
		configType: Configure(reg, "config.type", Options[string]{
			EnvVars:  []string{"CQL_CONFIG_TYPE"},
			FlagName: "config-type",
		}),
		configName: Configure(reg, "config.name", Options[string]{
			Default:  "cqlrender",
			EnvVars:  []string{"CQL_CONFIG_NAME"},
			FlagName: "config-name",
		}),
		configFile: Configure(reg, "config.file", Options[string]{
			EnvVars:  []string{"CQL_CONFIG_FILE"},
			FlagName: "config-file",
		}),
		configFileNotFoundHandling: Configure(reg, "config.notfound.handling", Options[ConfigFileNotFoundHandling]{
			Default:  IgnoreConfigFileNotFound,
			GetFunc:  getHandlingValue,
			FlagName: "config-file-not-found-handling",
		}),
	}
}

// RegisterFlags installs the flags that control viper config-loading behavior.
func (vc *ViperConfig) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringSlice("config-path", vc.configPaths.Default(), "Paths to search for config files in.")
	fs.String("config-type", vc.configType.Default(), "Config file type (omit to infer config type from file extension).")
	fs.String("config-name", vc.configName.Default(), "Name of the config file (without extension) to search for.")
	fs.String("config-file", vc.configFile.Default(), "Full path of the config file (with extension) to use. If set, --config-path, --config-type, and --config-name are ignored.")

	h := vc.configFileNotFoundHandling.Default()
	fs.Var(&h, "config-file-not-found-handling", fmt.Sprintf("Behavior when a config file is not found. (Options: %s)", strings.Join(handlingNames, ", ")))

	BindFlags(fs, vc.configPaths, vc.configType, vc.configName, vc.configFile, vc.configFileNotFoundHandling)
}

// LoadConfig attempts to find, and then load, a config file for viper-backed
// config values to use.
//
// Config searching follows the behavior used by viper, namely:
//   - --config-file (full path, including extension) if set will be used to the
//     exclusion of all other flags.
//   - --config-type is required if the config file does not have one of viper's
//     supported extensions (.yaml, .yml, .json, and so on)
//
// --config-file-not-found-handling controls how a missing config file is treated.
func (vc *ViperConfig) LoadConfig(reg *Registry) error {
	var err error
	switch file := vc.configFile.Get(); file {
	case "":
		if name := vc.configName.Get(); name != "" {
			reg.static.SetConfigName(name)

			for _, path := range vc.configPaths.Get() {
				reg.static.AddConfigPath(path)
			}

			if cfgType := vc.configType.Get(); cfgType != "" {
				reg.static.SetConfigType(cfgType)
			}

			err = reg.static.ReadInConfig()
		}
	default:
		reg.static.SetConfigFile(file)
		err = reg.static.ReadInConfig()
	}

	if err != nil && isConfigFileNotFoundError(err) {
		switch vc.configFileNotFoundHandling.Get() {
		case WarnOnConfigFileNotFound:
			slog.Warn("config file not found, using flags and environment only", "err", err)
			return nil
		case IgnoreConfigFileNotFound:
			return nil
		case ErrorOnConfigFileNotFound:
			slog.Error("failed to read in config", "file", reg.static.ConfigFileUsed(), "err", err)
		case ExitOnConfigFileNotFound:
			slog.Error("failed to read in config", "file", reg.static.ConfigFileUsed(), "err", err)
			os.Exit(1)
		}
	}

	return err
}

// isConfigFileNotFoundError checks if the error is caused because the file wasn't found.
func isConfigFileNotFoundError(err error) bool {
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return true
	}
	return errors.Is(err, os.ErrNotExist)
}

// ConfigFileNotFoundHandling is an enum to control how LoadConfig treats errors
// of type viper.ConfigFileNotFoundError when loading a config.
type ConfigFileNotFoundHandling int

const (
	// IgnoreConfigFileNotFound causes LoadConfig to completely ignore a
	// ConfigFileNotFoundError (i.e. not even logging it).
	IgnoreConfigFileNotFound ConfigFileNotFoundHandling = iota
	// WarnOnConfigFileNotFound causes LoadConfig to log a warning and proceed
	// with defaults, environment variables, and flags.
	WarnOnConfigFileNotFound
	// ErrorOnConfigFileNotFound causes LoadConfig to return the
	// ConfigFileNotFoundError after logging an error.
	ErrorOnConfigFileNotFound
	// ExitOnConfigFileNotFound causes LoadConfig to exit the process.
	ExitOnConfigFileNotFound
)

var (
	handlingNames         []string
	handlingNamesToValues = map[string]int{
		"ignore": int(IgnoreConfigFileNotFound),
		"warn":   int(WarnOnConfigFileNotFound),
		"error":  int(ErrorOnConfigFileNotFound),
		"exit":   int(ExitOnConfigFileNotFound),
	}
	handlingValuesToNames map[int]string
)

func getHandlingValue(v *viper.Viper) func(key string) ConfigFileNotFoundHandling {
	return func(key string) (h ConfigFileNotFoundHandling) {
		switch raw := v.Get(key).(type) {
		case ConfigFileNotFoundHandling:
			return raw
		case int:
			return ConfigFileNotFoundHandling(raw)
		case string:
			if err := h.Set(raw); err != nil {
				slog.Warn(fmt.Sprintf("failed to parse %s: %s; defaulting to %s", key, err.Error(), h.String()))
				return IgnoreConfigFileNotFound
			}
			return h
		default:
			return IgnoreConfigFileNotFound
		}
	}
}

func init() {
	handlingNames = make([]string, 0, len(handlingNamesToValues))
	handlingValuesToNames = make(map[int]string, len(handlingNamesToValues))

	for name, val := range handlingNamesToValues {
		handlingValuesToNames[val] = name
		handlingNames = append(handlingNames, name)
	}

	sort.Slice(handlingNames, func(i, j int) bool {
		return handlingNames[i] < handlingNames[j]
	})
}

func (h *ConfigFileNotFoundHandling) Set(arg string) error {
	larg := strings.ToLower(arg)
	if v, ok := handlingNamesToValues[larg]; ok {
		*h = ConfigFileNotFoundHandling(v)
		return nil
	}

	return fmt.Errorf("unknown handling name %s", arg)
}

func (h *ConfigFileNotFoundHandling) String() string {
	if name, ok := handlingValuesToNames[int(*h)]; ok {
		return name
	}

	return "<UNKNOWN>"
}

func (h *ConfigFileNotFoundHandling) Type() string { return "ConfigFileNotFoundHandling" }
