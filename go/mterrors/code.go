// Copyright 2022 The Vitess Authors.
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
// Modifications Copyright 2025 Supabase, Inc.

package mterrors

import (
	"errors"
	"fmt"
	"strings"
)

// Errors added to the list of variables below must be added to the Errors slice a little below in this same file.

var (
	// MT10001 malformed statement document
	MT10001 = define("MT10001", Code_INVALID_ARGUMENT, "malformed statement document: %s", "The statement document could not be decoded. Check that it is valid YAML or JSON with a top-level `statements` list.")

	// MT10002 unknown variant
	MT10002 = define("MT10002", Code_INVALID_ARGUMENT, "statement %d: unknown %s kind %q", "A tagged value names a kind that is not part of the grammar. Check the spelling of the kind.")

	// MT10003 missing field
	MT10003 = define("MT10003", Code_INVALID_ARGUMENT, "statement %d: %s requires %s", "A required field of a statement or clause is missing.")

	// MT10004 file access
	MT10004 = define("MT10004", Code_NOT_FOUND, "cannot read %s", "A statement document could not be read from the filesystem.")

	// MT13001 General Error
	MT13001 = define("MT13001", Code_INTERNAL, "[BUG] %s", "This error should not happen and is a bug.")

	// Errors is a list of errors that must match all the variables
	// defined above to enable auto-documentation of error codes.
	Errors = []*ErrorDef{
		MT10001.def, MT10002.def, MT10003.def, MT10004.def, MT13001.def,
	}
)

// Code is the category of an error.
type Code int

const (
	Code_OK Code = iota
	Code_INVALID_ARGUMENT
	Code_NOT_FOUND
	Code_INTERNAL
)

func (c Code) String() string {
	switch c {
	case Code_OK:
		return "OK"
	case Code_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case Code_NOT_FOUND:
		return "NOT_FOUND"
	case Code_INTERNAL:
		return "INTERNAL"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

type MultigresError struct {
	Err         error
	Description string
	ID          string
	Code        Code
	cause       error
}

func (o *MultigresError) Error() string {
	if o.cause != nil {
		return o.Err.Error() + ": " + o.cause.Error()
	}
	return o.Err.Error()
}

// Cause returns the underlying error, if any.
func (o *MultigresError) Cause() error {
	return o.cause
}

func (o *MultigresError) Unwrap() error {
	return o.cause
}

var _ error = (*MultigresError)(nil)

// ErrorDef documents one error id.
type ErrorDef struct {
	ID          string
	Code        Code
	Short       string
	Description string
}

// Constructor builds errors for one error id.
type Constructor struct {
	def *ErrorDef
}

// ID returns the error id the constructor produces.
func (c Constructor) ID() string {
	return c.def.ID
}

// New formats the short message with args.
func (c Constructor) New(args ...any) *MultigresError {
	return c.build(nil, args...)
}

// Wrap formats the short message with args and records cause.
func (c Constructor) Wrap(cause error, args ...any) *MultigresError {
	return c.build(cause, args...)
}

func (c Constructor) build(cause error, args ...any) *MultigresError {
	s := c.def.Short
	if len(args) != 0 {
		s = fmt.Sprintf(s, args...)
	}
	return &MultigresError{
		Err:         errors.New(c.def.ID + ": " + s),
		Description: c.def.Description,
		ID:          c.def.ID,
		Code:        c.def.Code,
		cause:       cause,
	}
}

func define(id string, code Code, short, long string) Constructor {
	return Constructor{def: &ErrorDef{ID: id, Code: code, Short: short, Description: long}}
}

// IsError reports whether err, or any error it wraps, carries the given id.
func IsError(err error, id string) bool {
	if err == nil {
		return false
	}
	var mte *MultigresError
	if errors.As(err, &mte) {
		return mte.ID == id
	}
	return strings.Contains(err.Error(), id)
}

// CodeOf returns the code of the first MultigresError in err's chain, or
// Code_INTERNAL for any other non-nil error.
func CodeOf(err error) Code {
	if err == nil {
		return Code_OK
	}
	var mte *MultigresError
	if errors.As(err, &mte) {
		return mte.Code
	}
	return Code_INTERNAL
}
