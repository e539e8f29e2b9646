//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlfetch

import (
	"errors"
	"fmt"
)

var (
	// ErrNoURL is returned by ParseCommand when the command has no URL.
	ErrNoURL = errors.New("URL not found in curl command")
	// ErrNoFilename is returned when the URL path has no final segment to
	// use as a file name.
	ErrNoFilename = errors.New("could not determine filename from URL")
	// ErrRevealUnsupported is returned by the default Revealer on platforms
	// without a supported file manager.
	ErrRevealUnsupported = errors.New("revealing files is not supported on this platform")
)

// NetworkError is a failure while talking to the server: transport errors,
// unexpected status codes, or a body that could not be read to the end.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("error downloading %s: %s", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// FileSystemError is a failure while saving the downloaded file.
type FileSystemError struct {
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("error saving %s: %s", e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error {
	return e.Err
}

// InvalidFormatError means the request could not be built from the parsed
// command, usually because of a malformed URL.
type InvalidFormatError struct {
	Err error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid URL or data format: %s", e.Err)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// RevealError is a failure to show the downloaded file in the file manager.
// It never makes a download fail.
type RevealError struct {
	Path string
	Err  error
}

func (e *RevealError) Error() string {
	return fmt.Sprintf("could not open file manager for %s: %s", e.Path, e.Err)
}

func (e *RevealError) Unwrap() error {
	return e.Err
}
