//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.bug.st/curlfetch"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.NotNil(t, cfg.Reveal)
	require.True(t, *cfg.Reveal)
	require.Nil(t, cfg.Exclusions)

	fc := cfg.fetchConfig()
	require.Nil(t, fc.Exclusions)
	require.Nil(t, fc.Revealer)
	require.Zero(t, fc.HttpClient.Timeout)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
dir: /tmp/books
timeout: 30s
inactivity_timeout: 5s
exclusions: [Range, If-None-Match]
reveal: false
decode_content_encoding: true
allow_non_2xx: true
log_level: debug
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/books", cfg.Dir)
	require.Equal(t, 30*time.Second, cfg.Timeout)
	require.Equal(t, 5*time.Second, cfg.InactivityTimeout)
	require.Equal(t, "debug", cfg.LogLevel)

	fc := cfg.fetchConfig()
	require.Equal(t, "/tmp/books", fc.Dir)
	require.Equal(t, 30*time.Second, fc.HttpClient.Timeout)
	require.Equal(t, 5*time.Second, fc.InactivityTimeout)
	require.True(t, fc.DecodeContentEncoding)
	require.True(t, fc.DoNotErrorOnNon2xxStatusCode)
	require.Equal(t, curlfetch.NopRevealer{}, fc.Revealer)
	require.NotNil(t, fc.Exclusions)
	require.Equal(t, []string{"if-none-match", "range"}, fc.Exclusions.Names())
}

func TestLoadConfigEmptyExclusions(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, "exclusions: []\n"))
	require.NoError(t, err)
	fc := cfg.fetchConfig()
	require.NotNil(t, fc.Exclusions)
	require.Zero(t, fc.Exclusions.Len())
	require.True(t, *cfg.Reveal)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read config")

	_, err = loadConfig(writeConfig(t, "dir: [unterminated"))
	require.ErrorContains(t, err, "parse yaml")

	_, err = loadConfig(writeConfig(t, "timeout: -1s\n"))
	require.ErrorContains(t, err, "invalid config")
}
