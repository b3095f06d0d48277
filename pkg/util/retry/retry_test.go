// Copyright (C) 2019-2020 Zilliz. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License
// is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express
// or implied. See the License for the specific language governing permissions and limitations under the License.

package retry

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/lk2023060901/record-garden-go/pkg/util/merr"
)

func TestDoSucceedsAfterFailures(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := Do(ctx, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, Attempts(10), Sleep(time.Millisecond))

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	ctx := context.Background()

	calls := 0
	mockErr := errors.New("always fails")
	err := Do(ctx, func() error {
		calls++
		return mockErr
	}, Attempts(4), Sleep(time.Millisecond))

	assert.ErrorIs(t, err, mockErr)
	assert.Equal(t, 4, calls)
}

func TestDoUnrecoverableStopsImmediately(t *testing.T) {
	ctx := context.Background()

	calls := 0
	mockErr := errors.New("fatal")
	err := Do(ctx, func() error {
		calls++
		return Unrecoverable(mockErr)
	}, Attempts(10), Sleep(time.Millisecond))

	assert.ErrorIs(t, err, mockErr)
	assert.Equal(t, 1, calls)
}

func TestDoRetryErrFilter(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := Do(ctx, func() error {
		calls++
		return merr.WrapErrRecordCorrupted("payload", 10, 4)
	}, Attempts(10), Sleep(time.Millisecond), RetryErr(merr.IsRetryableErr))

	assert.ErrorIs(t, err, merr.ErrRecordCorrupted)
	assert.Equal(t, 1, calls)
}

func TestDoCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, func() error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestDoContextDoneDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	mockErr := errors.New("transient")
	calls := 0
	err := Do(ctx, func() error {
		calls++
		cancel()
		return mockErr
	}, Attempts(10), Sleep(time.Second))

	assert.ErrorIs(t, err, mockErr)
	assert.Equal(t, 1, calls)
}

func TestHandleStopsWhenNotRetryable(t *testing.T) {
	ctx := context.Background()

	calls := 0
	mockErr := errors.New("no retry")
	err := Handle(ctx, func() (bool, error) {
		calls++
		return false, mockErr
	}, Attempts(10), Sleep(time.Millisecond))

	assert.ErrorIs(t, err, mockErr)
	assert.Equal(t, 1, calls)
}

func TestHandleSucceeds(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := Handle(ctx, func() (bool, error) {
		calls++
		if calls < 2 {
			return true, errors.New("again")
		}
		return false, nil
	}, Attempts(10), Sleep(time.Millisecond))

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}
