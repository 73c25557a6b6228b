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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigHandlingValue(t *testing.T) {
	v := viper.New()
	v.SetDefault("default", ExitOnConfigFileNotFound)
	v.SetConfigType("yaml")

	cfg := `
foo: 2
bar: nope
baz: error
`
	err := v.ReadConfig(strings.NewReader(cfg))
	require.NoError(t, err)

	getHandlingValueFunc := getHandlingValue(v)
	assert.Equal(t, ErrorOnConfigFileNotFound, getHandlingValueFunc("foo"), "failed to get int value")
	assert.Equal(t, IgnoreConfigFileNotFound, getHandlingValueFunc("bar"), "failed to fall back on invalid name")
	assert.Equal(t, ErrorOnConfigFileNotFound, getHandlingValueFunc("baz"), "failed to get string value")
	assert.Equal(t, IgnoreConfigFileNotFound, getHandlingValueFunc("notset"), "failed to get value on unset key")
	assert.Equal(t, ExitOnConfigFileNotFound, getHandlingValueFunc("default"), "failed to get value on default key")
}

// TestLoadConfig tests that LoadConfig behaves in the way expected when the config file doesn't exist.
func TestLoadConfig(t *testing.T) {
	t.Run("Ignore file not found error", func(t *testing.T) {
		reg := NewRegistry()
		vc := NewViperConfig(reg)
		vc.configFile.Set("notfound.yaml")
		vc.configFileNotFoundHandling.Set(IgnoreConfigFileNotFound)
		require.NoError(t, vc.LoadConfig(reg))
	})

	t.Run("Warn on file not found error", func(t *testing.T) {
		reg := NewRegistry()
		vc := NewViperConfig(reg)
		vc.configFile.Set("notfound.yaml")
		vc.configFileNotFoundHandling.Set(WarnOnConfigFileNotFound)
		require.NoError(t, vc.LoadConfig(reg))
	})

	t.Run("Error on file not found error", func(t *testing.T) {
		reg := NewRegistry()
		vc := NewViperConfig(reg)
		vc.configFile.Set("notfound.yaml")
		vc.configFileNotFoundHandling.Set(ErrorOnConfigFileNotFound)
		require.Error(t, vc.LoadConfig(reg))
	})

	t.Run("Reads values from file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "cqlrender.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output-format: json\n"), 0o644))

		reg := NewRegistry()
		format := Configure(reg, "output-format", Options[string]{Default: "text"})
		vc := NewViperConfig(reg)
		vc.configFile.Set(path)
		require.NoError(t, vc.LoadConfig(reg))
		assert.Equal(t, "json", format.Get())
		assert.Equal(t, path, reg.ConfigFileUsed())
	})
}

func TestConfigureAndBindFlags(t *testing.T) {
	reg := NewRegistry()
	level := Configure(reg, "log-level", Options[string]{
		Default:  "info",
		FlagName: "log-level",
		EnvVars:  []string{"CQL_TEST_LOG_LEVEL"},
	})
	watch := Configure(reg, "watch", Options[bool]{FlagName: "watch"})
	assert.Equal(t, "info", level.Get())
	assert.Equal(t, "log-level", level.Key())

	t.Setenv("CQL_TEST_LOG_LEVEL", "warn")
	assert.Equal(t, "warn", level.Get())

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", level.Default(), "")
	fs.Bool("watch", watch.Default(), "")
	BindFlags(fs, level, watch)
	require.NoError(t, fs.Parse([]string{"--log-level=debug", "--watch"}))

	assert.Equal(t, "debug", level.Get())
	assert.True(t, watch.Get())
}

func TestRegistryDecode(t *testing.T) {
	reg := NewRegistry()
	Configure(reg, "output-format", Options[string]{Default: "json"})
	Configure(reg, "separator", Options[string]{Default: ";"})
	Configure(reg, "watch", Options[bool]{Default: true})

	var out struct {
		OutputFormat string `mapstructure:"output-format"`
		Separator    string `mapstructure:"separator"`
		Watch        bool   `mapstructure:"watch"`
	}
	require.NoError(t, reg.Decode(&out))
	assert.Equal(t, "json", out.OutputFormat)
	assert.Equal(t, ";", out.Separator)
	assert.True(t, out.Watch)
}
