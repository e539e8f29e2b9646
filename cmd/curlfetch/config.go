//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"go.bug.st/curlfetch"
	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Dir                   string        `yaml:"dir"`
	Timeout               time.Duration `yaml:"timeout"`
	InactivityTimeout     time.Duration `yaml:"inactivity_timeout"`
	Exclusions            []string      `yaml:"exclusions"`
	Reveal                *bool         `yaml:"reveal"`
	DecodeContentEncoding bool          `yaml:"decode_content_encoding"`
	AllowNon2xx           bool          `yaml:"allow_non_2xx"`
	Progress              bool          `yaml:"progress"`
	LogLevel              string        `yaml:"log_level"`
}

func defaultFileConfig() *fileConfig {
	reveal := true
	return &fileConfig{
		Reveal:   &reveal,
		LogLevel: "info",
	}
}

// loadConfig reads the YAML configuration at path. An empty path returns
// the defaults.
func loadConfig(path string) (*fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Reveal == nil {
		reveal := true
		cfg.Reveal = &reveal
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Timeout < 0 || cfg.InactivityTimeout < 0 {
		return nil, fmt.Errorf("invalid config: timeouts must not be negative")
	}
	return cfg, nil
}

// fetchConfig converts the file configuration into the fetcher one.
func (c *fileConfig) fetchConfig() curlfetch.Config {
	res := curlfetch.Config{
		HttpClient:                   http.Client{Timeout: c.Timeout},
		Dir:                          c.Dir,
		DoNotErrorOnNon2xxStatusCode: c.AllowNon2xx,
		DecodeContentEncoding:        c.DecodeContentEncoding,
		InactivityTimeout:            c.InactivityTimeout,
	}
	if c.Exclusions != nil {
		set := curlfetch.NewExclusionSet(c.Exclusions...)
		res.Exclusions = &set
	}
	if c.Reveal != nil && !*c.Reveal {
		res.Revealer = curlfetch.NopRevealer{}
	}
	return res
}
