//
// Copyright 2018 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlfetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

// downloader copies a response body into a temporary file next to the
// target, and moves it over the target once the body is complete.
type downloader struct {
	URL           string
	Path          string
	Done          chan struct{}
	Resp          *http.Response
	in            io.Reader
	out           *os.File
	wd            *watchdog
	completed     int64
	completedLock sync.Mutex
	size          int64
	err           error
}

func newDownloader(reqURL, path string, resp *http.Response, in io.Reader, size int64, wd *watchdog) (*downloader, error) {
	f, err := createPartFile(path)
	if err != nil {
		return nil, &FileSystemError{Path: path, Err: fmt.Errorf("opening for writing: %w", err)}
	}
	return &downloader{
		URL:  reqURL,
		Path: path,
		Done: make(chan struct{}),
		Resp: resp,
		in:   in,
		out:  f,
		wd:   wd,
		size: size,
	}, nil
}

// Close the download
func (d *downloader) Close() error {
	err1 := d.out.Close()
	err2 := d.Resp.Body.Close()
	if err1 != nil {
		return fmt.Errorf("closing output file: %w", err1)
	}
	if err2 != nil {
		return fmt.Errorf("closing input stream: %w", err2)
	}
	return nil
}

// Size return the size of the download (or -1 if the server doesn't provide it)
func (d *downloader) Size() int64 {
	return d.size
}

// RunAndPoll starts the downloader copy-loop and calls the poll function every
// interval time to update progress.
func (d *downloader) RunAndPoll(poll func(current, size int64), interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	go d.Run()
	for {
		select {
		case <-t.C:
			poll(d.Completed(), d.Size())
		case <-d.Done:
			poll(d.Completed(), d.Size())
			return d.Error()
		}
	}
}

// Run copies the whole body and waits until it completes. On success the
// file is moved to its final path, on failure the partial file is removed.
// The Done channel is closed when the download is completed or an error occurs.
func (d *downloader) Run() error {
	defer close(d.Done)

	buff := [32 * 1024]byte{}
	for {
		n, err := d.in.Read(buff[:])
		if n > 0 {
			d.wd.Kick()
			if _, werr := d.out.Write(buff[:n]); werr != nil {
				d.err = &FileSystemError{Path: d.Path, Err: werr}
				break
			}
			d.completedLock.Lock()
			d.completed += int64(n)
			d.completedLock.Unlock()
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			d.err = &NetworkError{URL: d.URL, Err: d.readError(err)}
			break
		}
	}

	if d.err == nil {
		if err := d.out.Chmod(0644); err != nil {
			d.err = &FileSystemError{Path: d.Path, Err: err}
		}
	}
	if err := d.Close(); err != nil && d.err == nil {
		d.err = &FileSystemError{Path: d.Path, Err: err}
	}
	if d.err != nil {
		_ = os.Remove(d.out.Name())
		return d.err
	}
	if err := os.Rename(d.out.Name(), d.Path); err != nil {
		_ = os.Remove(d.out.Name())
		d.err = &FileSystemError{Path: d.Path, Err: err}
	}
	return d.err
}

func (d *downloader) readError(err error) error {
	if d.wd.Expired() {
		return fmt.Errorf("no data received for %s: %w", d.wd.timeout, os.ErrDeadlineExceeded)
	}
	return err
}

// Error returns the error during download or nil if no errors happened
func (d *downloader) Error() error {
	return d.err
}

// Completed returns the bytes saved so far
func (d *downloader) Completed() int64 {
	d.completedLock.Lock()
	res := d.completed
	d.completedLock.Unlock()
	return res
}
