//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerSinkLevels(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger("info", &buf)
	require.NoError(t, err)

	log.sink("Requesting https://example.com/a.pdf")
	log.sink("Could not open file explorer: boom")
	log.sink("Error: URL not found in curl command")
	log.Debug("hidden")
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "INFO")
	require.Contains(t, lines[0], "Requesting https://example.com/a.pdf")
	require.Contains(t, lines[1], "WARN")
	require.Contains(t, lines[2], "ERROR")
	require.Contains(t, lines[2], "URL not found in curl command")
	require.NotContains(t, lines[2], "Error: ")
}

func TestLoggerInvalidLevel(t *testing.T) {
	_, err := newLogger("chatty", &bytes.Buffer{})
	require.Error(t, err)
}
