//
// Copyright 2018 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlfetch

import (
	"net/http"
	"sync"
	"time"
)

// Config contains the configuration for the fetcher
type Config struct {
	// HttpClient to use to perform HTTP requests
	HttpClient http.Client
	// Exclusions are the headers dropped while parsing a command.
	// If nil DefaultExclusions is used.
	Exclusions *ExclusionSet
	// Dir is the directory where the file is saved. If empty the current
	// working directory is used.
	Dir string
	// Revealer shows the downloaded file in the file manager.
	// If nil DefaultRevealer() is used.
	Revealer Revealer
	// AcceptFunc is an optional function that will be called
	// when the response headers are received, before saving the body.
	// If the function returns an error, the download is aborted.
	AcceptFunc func(resp *http.Response) error
	// DoNotErrorOnNon2xxStatusCode set to true to not return an error
	// if the server returns a non-2xx status code.
	DoNotErrorOnNon2xxStatusCode bool
	// DecodeContentEncoding set to true to decompress gzip, deflate and zstd
	// encoded bodies before saving them.
	DecodeContentEncoding bool
	// InactivityTimeout is the duration after which, if no data is received,
	// the download is aborted. If set to 0, no timeout is applied.
	InactivityTimeout time.Duration
	// PollInterval is the interval between calls to PollFunction.
	PollInterval time.Duration
	// PollFunction, if set, is called every PollInterval with the number of
	// bytes saved so far and the expected size (-1 if unknown).
	PollFunction func(current, size int64)
}

func (c *Config) exclusions() ExclusionSet {
	if c.Exclusions == nil {
		return DefaultExclusions
	}
	return *c.Exclusions
}

func (c *Config) revealer() Revealer {
	if c.Revealer == nil {
		return DefaultRevealer()
	}
	return c.Revealer
}

var defaultConfig Config = Config{}
var defaultConfigLock sync.Mutex

// SetDefaultConfig sets the configuration that will be used by the Fetch
// and DownloadFromCurl functions.
func SetDefaultConfig(newConfig Config) {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	defaultConfig = newConfig
}

// GetDefaultConfig returns a copy of the default configuration. The default
// configuration can be changed using the SetDefaultConfig function.
func GetDefaultConfig() Config {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()

	// deep copy struct
	return defaultConfig
}
