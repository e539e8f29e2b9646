//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type logger struct {
	*zap.SugaredLogger
}

// newLogger builds a console logger writing to w at the given level
// (debug, info, warn, error).
func newLogger(level string, w io.Writer) (*logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return &logger{zap.New(core).Sugar()}, nil
}

// sink adapts the logger to the fetcher progress messages. Error and
// advisory messages are raised to the matching level.
func (l *logger) sink(msg string) {
	switch {
	case strings.HasPrefix(msg, "Error: "):
		l.Error(strings.TrimPrefix(msg, "Error: "))
	case strings.HasPrefix(msg, "Could not open"), strings.HasPrefix(msg, "Note: "):
		l.Warn(msg)
	default:
		l.Info(msg)
	}
}
