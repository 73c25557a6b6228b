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
	"log/slog"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options configures a Value.
type Options[T any] struct {
	// Aliases are alternate keys that resolve to the same value.
	Aliases []string
	// FlagName is the pflag name bound by BindFlags. Empty means no flag.
	FlagName string
	// EnvVars are environment variables consulted, in order, for the value.
	EnvVars []string
	// Default is returned when no other source sets the value.
	Default T
	// GetFunc reads the value from viper. Defaults to a reader chosen by T.
	GetFunc func(v *viper.Viper) func(key string) T
}

// Value is a typed handle on one configuration key.
type Value[T any] interface {
	Key() string
	Default() T
	Get() T
	Set(v T)
	// flagName is the flag bound by BindFlags, empty when there is none.
	flagName() string
	bind(fs *pflag.FlagSet)
}

type staticValue[T any] struct {
	reg      *Registry
	key      string
	flag     string
	def      T
	getValue func(key string) T
}

// Configure registers key with reg and returns a handle on its value.
func Configure[T any](reg *Registry, key string, opts Options[T]) Value[T] {
	v := reg.static
	v.SetDefault(key, opts.Default)
	for _, alias := range opts.Aliases {
		v.RegisterAlias(alias, key)
	}
	if len(opts.EnvVars) > 0 {
		if err := v.BindEnv(append([]string{key}, opts.EnvVars...)...); err != nil {
			slog.Warn("failed to bind env vars", "key", key, "err", err)
		}
	}

	getFunc := opts.GetFunc
	if getFunc == nil {
		getFunc = GetFuncForType[T]()
	}
	return &staticValue[T]{
		reg:      reg,
		key:      key,
		flag:     opts.FlagName,
		def:      opts.Default,
		getValue: getFunc(v),
	}
}

func (val *staticValue[T]) Key() string      { return val.key }
func (val *staticValue[T]) Default() T       { return val.def }
func (val *staticValue[T]) Get() T           { return val.getValue(val.key) }
func (val *staticValue[T]) Set(v T)          { val.reg.static.Set(val.key, v) }
func (val *staticValue[T]) flagName() string { return val.flag }

func (val *staticValue[T]) bind(fs *pflag.FlagSet) {
	if val.flag == "" {
		return
	}
	f := fs.Lookup(val.flag)
	if f == nil {
		slog.Warn("flag not registered before binding", "flag", val.flag, "key", val.key)
		return
	}
	if err := val.reg.static.BindPFlag(val.key, f); err != nil {
		slog.Warn("failed to bind flag", "flag", val.flag, "err", err)
	}
}

// Bindable is a value that can be bound to a flag set.
type Bindable interface {
	flagName() string
	bind(fs *pflag.FlagSet)
}

// BindFlags binds each value to the flag of the same FlagName in fs. The flags
// must already be defined on fs.
func BindFlags(fs *pflag.FlagSet, values ...Bindable) {
	for _, v := range values {
		v.bind(fs)
	}
}

// GetFuncForType returns the viper accessor for the common config types.
func GetFuncForType[T any]() func(v *viper.Viper) func(key string) T {
	var zero T
	var fn any
	switch any(zero).(type) {
	case bool:
		fn = func(v *viper.Viper) func(string) bool { return v.GetBool }
	case int:
		fn = func(v *viper.Viper) func(string) int { return v.GetInt }
	case string:
		fn = func(v *viper.Viper) func(string) string { return v.GetString }
	case []string:
		fn = func(v *viper.Viper) func(string) []string { return v.GetStringSlice }
	default:
		return func(v *viper.Viper) func(string) T {
			return func(key string) T {
				out, _ := v.Get(key).(T)
				return out
			}
		}
	}
	return fn.(func(v *viper.Viper) func(string) T)
}
