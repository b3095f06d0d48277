// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package merr

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

const (
	CanceledCode int32 = 10000
	TimeoutCode  int32 = 10001
)

type ErrorType int32

const (
	SystemError ErrorType = 0
	InputError  ErrorType = 1
)

var ErrorTypeName = map[ErrorType]string{
	SystemError: "system_error",
	InputError:  "input_error",
}

func (err ErrorType) String() string {
	return ErrorTypeName[err]
}

// Define leaf errors here,
// WARN: take care to add new error,
// check whether you can use the errors below before adding a new one.
// Name: Err + related prefix + error name
var (
	// IO related
	ErrIoFailed      = newGardenError("IO failed", 1001, false)
	ErrIoUnexpectEOF = newGardenError("unexpected EOF", 1002, true)

	// Parameter related
	ErrParameterInvalid = newGardenError("invalid parameter", 1100, false)
	ErrParameterMissing = newGardenError("missing parameter", 1101, false)

	// Record stream related
	ErrRecordNotInitialized = newGardenError("message missing required fields", 1500, false)
	// ErrRecordCorrupted indicates a short read of the length prefix or the
	// payload of a frame: something was on the stream but not a whole record.
	// A clean end of stream is io.EOF, never this error.
	ErrRecordCorrupted   = newGardenError("record stream corrupted", 1501, false)
	ErrRecordTooLarge    = newGardenError("record too large", 1502, false)
	ErrRecordDeserialize = newGardenError("failed to deserialize record", 1503, false)

	// Document codec related
	ErrDocumentNotObject = newGardenError("expecting a document object", 1600, false)
	ErrFieldTypeMismatch = newGardenError("field type mismatch", 1601, false)
	ErrFieldNullValue    = newGardenError("null value not permitted", 1602, false)
	ErrEnumValueNotFound = newGardenError("enum value not found", 1603, false)

	// Do NOT export this,
	// never allow programmer using this, keep only for converting unknown error to gardenError
	errUnexpected = newGardenError("unexpected error", (1<<16)-1, false)
)

type errorOption func(*gardenError)

func WithDetail(detail string) errorOption {
	return func(err *gardenError) {
		err.detail = detail
	}
}

func WithErrorType(etype ErrorType) errorOption {
	return func(err *gardenError) {
		err.errType = etype
	}
}

type gardenError struct {
	msg       string
	detail    string
	retriable bool
	errCode   int32
	errType   ErrorType
}

func newGardenError(msg string, code int32, retriable bool, options ...errorOption) gardenError {
	err := gardenError{
		msg:       msg,
		detail:    msg,
		retriable: retriable,
		errCode:   code,
	}

	for _, option := range options {
		option(&err)
	}
	return err
}

func (e gardenError) code() int32 {
	return e.errCode
}

func (e gardenError) Error() string {
	return e.msg
}

func (e gardenError) Detail() string {
	return e.detail
}

func (e gardenError) Is(err error) bool {
	cause := errors.Cause(err)
	if cause, ok := cause.(gardenError); ok {
		return e.errCode == cause.errCode
	}
	return false
}

type multiErrors struct {
	errs []error
}

func (e multiErrors) Unwrap() error {
	if len(e.errs) <= 1 {
		return nil
	}
	// To make merr work for multi errors,
	// we need cause of multi errors, which defined as the last error
	if len(e.errs) == 2 {
		return e.errs[1]
	}

	return multiErrors{
		errs: e.errs[1:],
	}
}

func (e multiErrors) Error() string {
	final := e.errs[0]
	for i := 1; i < len(e.errs); i++ {
		final = errors.Wrap(e.errs[i], final.Error())
	}
	return final.Error()
}

func (e multiErrors) Is(err error) bool {
	for _, item := range e.errs {
		if errors.Is(item, err) {
			return true
		}
	}
	return false
}

func Combine(errs ...error) error {
	errs = lo.Filter(errs, func(err error, _ int) bool { return err != nil })
	if len(errs) == 0 {
		return nil
	}
	return multiErrors{
		errs,
	}
}
