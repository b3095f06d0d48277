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
	"time"

	"github.com/cenkalti/backoff/v4"
)

type config struct {
	attempts   uint
	backoff    *backoff.ExponentialBackOff
	isRetryErr func(err error) bool
}

func newDefaultConfig() *config {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 3 * time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	// 重试次数由 attempts 控制，不受总时长限制。
	b.MaxElapsedTime = 0
	return &config{
		attempts: 10,
		backoff:  b,
	}
}

// Option 用于配置重试行为的选项函数。
type Option func(*config)

// Attempts 设置最大重试次数。0 表示不限次数。
func Attempts(attempts uint) Option {
	return func(c *config) {
		c.attempts = attempts
	}
}

// Sleep 设置初始休眠时间，之后按指数退避增长。
func Sleep(sleep time.Duration) Option {
	return func(c *config) {
		c.backoff.InitialInterval = sleep
		if c.backoff.MaxInterval < sleep {
			c.backoff.MaxInterval = sleep
		}
	}
}

// MaxSleepTime 设置单次休眠时间的上限。
func MaxSleepTime(maxSleepTime time.Duration) Option {
	return func(c *config) {
		c.backoff.MaxInterval = maxSleepTime
	}
}

// RetryErr 设置错误过滤函数，返回 false 的错误立即终止重试。
func RetryErr(isRetryErr func(err error) bool) Option {
	return func(c *config) {
		c.isRetryErr = isRetryErr
	}
}
