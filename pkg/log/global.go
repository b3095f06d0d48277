// Copyright 2019 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"sync/atomic"

	"github.com/uber/jaeger-client-go/utils"
	"go.uber.org/zap"
)

type ctxLogKeyType struct{}

var CtxLogKey = ctxLogKeyType{}

var (
	_globalL atomic.Value // *zap.Logger
	_globalS atomic.Value // *zap.SugaredLogger
	_globalR atomic.Value // *utils.ReconfigurableRateLimiter
	_globalP atomic.Value // *ZapProperties
)

func init() {
	lg, props, err := InitLogger(&Config{Stdout: true})
	if err != nil {
		panic(err)
	}
	ReplaceGlobals(lg, props)
	// 默认全局限流器：每秒 1.0 额度，桶上限 60。
	_globalR.Store(utils.NewRateLimiter(1.0, 60.0))
}

// L 返回全局 Logger。
func L() *zap.Logger {
	return _globalL.Load().(*zap.Logger)
}

// S 返回全局 SugaredLogger。
func S() *zap.SugaredLogger {
	return _globalS.Load().(*zap.SugaredLogger)
}

// R 返回全局限流器。
func R() *utils.ReconfigurableRateLimiter {
	return _globalR.Load().(*utils.ReconfigurableRateLimiter)
}

// ReplaceGlobals 替换全局 Logger 及其属性。
func ReplaceGlobals(logger *zap.Logger, props *ZapProperties) {
	_globalL.Store(logger)
	_globalS.Store(logger.Sugar())
	_globalP.Store(props)
}

// SetupRateLimiter 重新配置全局限流器。
func SetupRateLimiter(creditPerSecond, maxBalance float64) {
	R().Update(creditPerSecond, maxBalance)
}

// Debug 在 Debug 级别输出一条日志。
func Debug(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Debug(msg, fields...)
}

// Info 在 Info 级别输出一条日志。
func Info(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Info(msg, fields...)
}

// Warn 在 Warn 级别输出一条日志。
func Warn(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Warn(msg, fields...)
}

// Error 在 Error 级别输出一条日志。
func Error(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Error(msg, fields...)
}

// Fatal 在 Fatal 级别输出一条日志，随后进程退出。
func Fatal(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Fatal(msg, fields...)
}

// With 创建一个携带额外字段的子 Logger。
func With(fields ...zap.Field) *MLogger {
	return &MLogger{
		Logger: L().With(fields...),
	}
}

// Ctx 返回 context 中携带的 Logger；若不存在则返回全局 Logger。
func Ctx(ctx context.Context) *MLogger {
	if ctx == nil {
		return &MLogger{Logger: L()}
	}
	if lg, ok := ctx.Value(CtxLogKey).(*MLogger); ok && lg != nil {
		return lg
	}
	return &MLogger{Logger: L()}
}

// WithFields 返回一个新 context，其中的 Logger 追加了给定字段。
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	return context.WithValue(ctx, CtxLogKey, Ctx(ctx).With(fields...))
}
