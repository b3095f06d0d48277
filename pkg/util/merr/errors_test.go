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
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/suite"
)

type ErrSuite struct {
	suite.Suite
}

func (s *ErrSuite) TestCode() {
	err := WrapErrFieldTypeMismatch("weight", "array")
	errors.Wrap(err, "failed to parse document")
	s.ErrorIs(err, ErrFieldTypeMismatch)
	s.Equal(Code(ErrFieldTypeMismatch), Code(err))
	s.Equal(TimeoutCode, Code(context.DeadlineExceeded))
	s.Equal(CanceledCode, Code(context.Canceled))
	s.Equal(errUnexpected.errCode, Code(errUnexpected))
	s.Equal(int32(0), Code(nil))

	sameCodeErr := newGardenError("new error", ErrFieldTypeMismatch.errCode, false)
	s.True(sameCodeErr.Is(ErrFieldTypeMismatch))
}

func (s *ErrSuite) TestWrap() {
	// IO 相关错误。
	s.ErrorIs(WrapErrIoFailed("/tmp/records", errors.New("disk full")), ErrIoFailed)
	s.ErrorIs(WrapErrIoUnexpectEOF("/tmp/records", errors.New("short read")), ErrIoUnexpectEOF)

	// Parameter 相关错误。
	s.ErrorIs(WrapErrParameterInvalid("seekable handle", "pipe"), ErrParameterInvalid)
	s.ErrorIs(WrapErrParameterInvalidMsg("unsupported mode %s", "rw"), ErrParameterInvalid)
	s.ErrorIs(WrapErrParameterMissing("path"), ErrParameterMissing)

	// Record stream 相关错误。
	s.ErrorIs(WrapErrRecordNotInitialized(errors.New("name: required field not set")), ErrRecordNotInitialized)
	s.ErrorIs(WrapErrRecordCorrupted("length prefix", 4, 2), ErrRecordCorrupted)
	s.ErrorIs(WrapErrRecordTooLarge(1<<40, 1<<30), ErrRecordTooLarge)
	s.ErrorIs(WrapErrRecordDeserialize(errors.New("invalid wire format")), ErrRecordDeserialize)

	// Document codec 相关错误。
	s.ErrorIs(WrapErrDocumentNotObject("array"), ErrDocumentNotObject)
	s.ErrorIs(WrapErrFieldTypeMismatch("name", "number"), ErrFieldTypeMismatch)
	s.ErrorIs(WrapErrFieldNullValue("name"), ErrFieldNullValue)
	s.ErrorIs(WrapErrEnumValueNotFound("status", "UNKNOWN_STATE"), ErrEnumValueNotFound)
}

func (s *ErrSuite) TestWrapMessage() {
	err := WrapErrEnumValueNotFound("status", "GONE", "while parsing document")
	s.ErrorIs(err, ErrEnumValueNotFound)
	s.Contains(err.Error(), "status")
	s.Contains(err.Error(), "GONE")
	s.Contains(err.Error(), "while parsing document")
}

func (s *ErrSuite) TestCombine() {
	var (
		errFirst  = errors.New("first")
		errSecond = errors.New("second")
		errThird  = errors.New("third")
	)

	err := Combine(errFirst, errSecond)
	s.True(errors.Is(err, errFirst))
	s.True(errors.Is(err, errSecond))
	s.False(errors.Is(err, errThird))

	s.Equal("first: second", err.Error())
}

func (s *ErrSuite) TestCombineWithNil() {
	err := errors.New("non-nil")

	s.Equal(err.Error(), Combine(nil, err).Error())
	s.Equal(err.Error(), Combine(err, nil).Error())
	s.NoError(Combine(nil, nil))
}

func (s *ErrSuite) TestRetryable() {
	s.False(IsRetryableErr(ErrRecordCorrupted))
	s.True(IsRetryableErr(ErrIoUnexpectEOF))
	s.False(IsRetryableErr(errors.New("not a garden error")))
}

func (s *ErrSuite) TestInputError() {
	err := WrapErrAsInputError(ErrFieldNullValue)
	s.Equal(InputError, GetErrorType(err))
	s.Equal(SystemError, GetErrorType(ErrIoFailed))
}

func TestErrors(t *testing.T) {
	suite.Run(t, new(ErrSuite))
}
