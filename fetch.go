//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultPollInterval = 250 * time.Millisecond

// LogFunc receives the human readable progress and error messages of a
// download, in order. A nil LogFunc discards them.
type LogFunc func(msg string)

func (l LogFunc) printf(format string, args ...any) {
	if l != nil {
		l(fmt.Sprintf(format, args...))
	}
}

// Result describes a completed download.
type Result struct {
	// Filename is the name derived from the URL path.
	Filename string
	// Path is the absolute path of the saved file.
	Path string
	// Size is the number of bytes written.
	Size int64
	// StatusCode of the HTTP response.
	StatusCode int
	// RevealErr is the (non fatal) error returned while revealing the file.
	RevealErr error
}

// DownloadFromCurl parses command and downloads the file it refers to using
// the default configuration.
func DownloadFromCurl(ctx context.Context, command string, log LogFunc) (*Result, error) {
	return DownloadFromCurlWithConfig(ctx, command, log, GetDefaultConfig())
}

// DownloadFromCurlWithConfig parses command with the exclusions of config
// and downloads the file it refers to. Nothing is fetched if the command
// can't be parsed.
func DownloadFromCurlWithConfig(ctx context.Context, command string, log LogFunc, config Config) (*Result, error) {
	req, err := ParseCommand(command, config.exclusions())
	if err != nil {
		log.printf("Error: %s", err)
		return nil, err
	}
	log.printf("Found URL and %d header(s) in curl command", len(req.Headers))
	return FetchWithConfig(ctx, req, log, config)
}

// Fetch downloads req using the default configuration.
func Fetch(ctx context.Context, req *ParsedRequest, log LogFunc) (*Result, error) {
	return FetchWithConfig(ctx, req, log, GetDefaultConfig())
}

// FetchWithConfig performs a GET of req.URL with req.Headers and saves the
// body in config.Dir, under the last segment of the URL path. An existing
// file with the same name is replaced. After a successful download the file
// is shown through config.Revealer; a failure there is logged and stored in
// Result.RevealErr but the download is still successful.
//
// Every error is also reported through log before being returned.
func FetchWithConfig(ctx context.Context, req *ParsedRequest, log LogFunc, config Config) (*Result, error) {
	res, err := fetch(ctx, req, log, &config)
	if err != nil {
		log.printf("Error: %s", err)
		return nil, err
	}
	reveal(res, log, config.revealer())
	return res, nil
}

func fetch(ctx context.Context, req *ParsedRequest, log LogFunc, config *Config) (*Result, error) {
	if req == nil || req.URL == "" {
		return nil, ErrNoURL
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, &InvalidFormatError{Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &InvalidFormatError{Err: fmt.Errorf("unsupported URL scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &InvalidFormatError{Err: fmt.Errorf("missing host in %q", req.URL)}
	}
	display := req.URL
	if decoded, err := url.PathUnescape(req.URL); err == nil {
		display = decoded
	}
	log.printf("Decoded URL: %s", display)

	ctx, wd := newWatchdog(ctx, config.InactivityTimeout)
	defer wd.Cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, &InvalidFormatError{Err: fmt.Errorf("setting up HTTP request: %w", err)}
	}
	httpReq.Header = req.Headers.HTTPHeader()

	log.printf("Requesting %s with %d header(s)", display, len(req.Headers))
	resp, err := config.HttpClient.Do(httpReq)
	if err != nil {
		if wd.Expired() {
			err = fmt.Errorf("no response received for %s: %w", wd.timeout, os.ErrDeadlineExceeded)
		}
		return nil, &NetworkError{URL: display, Err: err}
	}
	defer resp.Body.Close()
	wd.Kick()
	log.printf("Server responded: %s", resp.Status)

	if !config.DoNotErrorOnNon2xxStatusCode && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return nil, &NetworkError{URL: display, Err: fmt.Errorf("HTTP %s", resp.Status)}
	}
	if config.AcceptFunc != nil {
		if err := config.AcceptFunc(resp); err != nil {
			return nil, &NetworkError{URL: display, Err: fmt.Errorf("response rejected: %w", err)}
		}
	}

	filename, err := FilenameFromURL(u)
	if err != nil {
		return nil, err
	}
	if filepath.Base(filename) != filename || strings.ContainsAny(filename, `/\`) {
		return nil, &FileSystemError{Path: filename, Err: errors.New("invalid file name")}
	}
	dir := config.Dir
	if dir == "" {
		dir = "."
	}
	path, err := filepath.Abs(filepath.Join(dir, filename))
	if err != nil {
		return nil, &FileSystemError{Path: filename, Err: err}
	}
	log.printf("Saving to %s", path)

	var in io.Reader = resp.Body
	size := resp.ContentLength
	if config.DecodeContentEncoding {
		encoding := resp.Header.Get("Content-Encoding")
		dec, closeDecoder, decoded, err := contentDecoder(encoding, resp.Body)
		if err != nil {
			return nil, &NetworkError{URL: display, Err: err}
		}
		defer closeDecoder()
		if decoded {
			log.printf("Decoding %s content", encoding)
			size = -1
		}
		in = dec
	}

	d, err := newDownloader(display, path, resp, in, size, wd)
	if err != nil {
		return nil, err
	}
	if config.PollFunction != nil {
		interval := config.PollInterval
		if interval <= 0 {
			interval = defaultPollInterval
		}
		err = d.RunAndPoll(config.PollFunction, interval)
	} else {
		err = d.Run()
	}
	if err != nil {
		return nil, err
	}

	log.printf("Downloaded '%s' successfully (%d bytes)", filename, d.Completed())
	return &Result{
		Filename:   filename,
		Path:       path,
		Size:       d.Completed(),
		StatusCode: resp.StatusCode,
	}, nil
}

func reveal(res *Result, log LogFunc, revealer Revealer) {
	err := revealer.Reveal(res.Path)
	if err == nil {
		return
	}
	res.RevealErr = &RevealError{Path: res.Path, Err: err}
	if errors.Is(err, ErrRevealUnsupported) {
		log.printf("Note: %s, not opening the file manager", err)
		return
	}
	log.printf("Could not open file explorer: %s", err)
}
