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
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ZapProperties records some information useful to reconfigure the
// global logger after InitLogger.
type ZapProperties struct {
	Core   zapcore.Core
	Syncer zapcore.WriteSyncer
	Level  zap.AtomicLevel
}

// InitLogger initializes a zap logger from the given config.
func InitLogger(cfg *Config, opts ...zap.Option) (*zap.Logger, *ZapProperties, error) {
	cfg.normalize()

	syncer, err := createSyncer(cfg)
	if err != nil {
		return nil, nil, err
	}

	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, errors.Wrapf(err, "unrecognized log level %q", cfg.Level)
	}

	var encoder zapcore.Encoder
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	switch cfg.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	case "text", "console", "":
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		return nil, nil, errors.Newf("unsupported log format %q", cfg.Format)
	}

	core := zapcore.NewCore(encoder, syncer, level)

	zapOpts := []zap.Option{zap.AddStacktrace(zapcore.FatalLevel)}
	if !cfg.DisableCaller {
		zapOpts = append(zapOpts, zap.AddCaller())
	}
	if !cfg.DisableStacktrace {
		zapOpts = append(zapOpts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	zapOpts = append(zapOpts, opts...)

	lg := zap.New(core, zapOpts...)
	props := &ZapProperties{
		Core:   core,
		Syncer: syncer,
		Level:  level,
	}
	return lg, props, nil
}

func createSyncer(cfg *Config) (zapcore.WriteSyncer, error) {
	var syncers []zapcore.WriteSyncer

	if cfg.Stdout || cfg.File.Filename == "" {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}

	if cfg.File.Filename != "" {
		filename := cfg.File.Filename
		if cfg.File.RootPath != "" {
			filename = filepath.Join(cfg.File.RootPath, filename)
		}
		if st, err := os.Stat(filename); err == nil && st.IsDir() {
			return nil, errors.New("can't use directory as log file name")
		}
		// 文件日志通过 lumberjack 完成滚动与清理。
		syncers = append(syncers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   filename,
			MaxSize:    cfg.File.MaxSize,
			MaxAge:     cfg.File.MaxDays,
			MaxBackups: cfg.File.MaxBackups,
			LocalTime:  true,
		}))
	}

	return zapcore.NewMultiWriteSyncer(syncers...), nil
}
