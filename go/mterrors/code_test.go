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

package mterrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsListIsComplete(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range Errors {
		require.NotEmpty(t, def.Description, def.ID)
		assert.False(t, seen[def.ID], "duplicate id %s", def.ID)
		seen[def.ID] = true
	}
	for _, c := range []Constructor{MT10001, MT10002, MT10003, MT10004, MT13001} {
		assert.True(t, seen[c.ID()], "%s missing from Errors", c.ID())
	}
}

func TestConstructorNew(t *testing.T) {
	err := MT10002.New(3, "operand", "bogus")
	assert.Equal(t, `MT10002: statement 3: unknown operand kind "bogus"`, err.Error())
	assert.Equal(t, Code_INVALID_ARGUMENT, err.Code)
	assert.Nil(t, err.Cause())
	assert.True(t, IsError(err, "MT10002"))
	assert.False(t, IsError(err, "MT10003"))
}

func TestConstructorWrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("loading: %w", MT10004.Wrap(cause, "a.yaml"))

	assert.Equal(t, "loading: MT10004: cannot read a.yaml: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsError(err, "MT10004"))
	assert.Equal(t, Code_NOT_FOUND, CodeOf(err))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, Code_OK, CodeOf(nil))
	assert.Equal(t, Code_INTERNAL, CodeOf(errors.New("plain")))
	assert.Equal(t, "INVALID_ARGUMENT", Code_INVALID_ARGUMENT.String())
	assert.False(t, IsError(nil, "MT10001"))
}
