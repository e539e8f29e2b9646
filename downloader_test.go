//
// Copyright 2018 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startDownload(t *testing.T, ts *httptest.Server, target string) *downloader {
	_, wd := newWatchdog(context.Background(), 0)
	t.Cleanup(wd.Cancel)
	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	d, err := newDownloader(ts.URL, target, resp, resp.Body, resp.ContentLength, wd)
	require.NoError(t, err)
	return d
}

func TestDownload(t *testing.T) {
	payload := testPayload(8052)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer ts.Close()

	target := filepath.Join(t.TempDir(), "test.txt")
	d := startDownload(t, ts, target)
	require.NoError(t, d.Run())
	require.Equal(t, int64(8052), d.Completed())

	<-d.Done
	file, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, payload, file)

	info, err := os.Stat(target)
	require.NoError(t, err)
	if filepath.Separator == '/' {
		require.Equal(t, os.FileMode(0644), info.Mode().Perm())
	}
}

func TestDownloadKeepsTargetOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		if hj, ok := w.(http.Hijacker); ok {
			conn, _, _ := hj.Hijack()
			conn.Close()
		}
	}))
	defer ts.Close()

	dir := t.TempDir()
	target := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(target, []byte("previous"), 0644))

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	_, wd := newWatchdog(context.Background(), 0)
	defer wd.Cancel()
	d, err := newDownloader(ts.URL, target, resp, resp.Body, resp.ContentLength, wd)
	require.NoError(t, err)

	err = d.Run()
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	require.Equal(t, err, d.Error())

	file, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, []byte("previous"), file)
	require.Equal(t, []string{"test.txt"}, dirEntries(t, dir))
}

func TestRunAndPoll(t *testing.T) {
	payload := testPayload(100 * 1024)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer ts.Close()

	d := startDownload(t, ts, filepath.Join(t.TempDir(), "poll.bin"))
	polls := 0
	var last, lastSize int64
	require.NoError(t, d.RunAndPoll(func(current, size int64) {
		polls++
		last, lastSize = current, size
	}, time.Millisecond))
	require.GreaterOrEqual(t, polls, 1)
	require.Equal(t, int64(len(payload)), last)
	require.Equal(t, d.Size(), lastSize)
}

func TestWatchdog(t *testing.T) {
	ctx, wd := newWatchdog(context.Background(), 50*time.Millisecond)
	for i := 0; i < 5; i++ {
		time.Sleep(20 * time.Millisecond)
		wd.Kick()
	}
	require.NoError(t, ctx.Err())
	require.False(t, wd.Expired())

	<-ctx.Done()
	require.True(t, wd.Expired())
	require.ErrorIs(t, context.Cause(ctx), os.ErrDeadlineExceeded)

	ctx, wd = newWatchdog(context.Background(), 0)
	wd.Cancel()
	require.ErrorIs(t, ctx.Err(), context.Canceled)
	require.False(t, wd.Expired())
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  error
	}{
		{"https://example.com/path/report%20final.pdf", "report final.pdf", nil},
		{"https://example.com/a/b/c.tar.gz?token=1#frag", "c.tar.gz", nil},
		{"https://example.com/%E4%B9%A6.epub", "书.epub", nil},
		{"https://example.com/a%2Fb.txt", "b.txt", nil},
		{"https://example.com", "", ErrNoFilename},
		{"https://example.com/", "", ErrNoFilename},
		{"https://example.com/dir/", "", ErrNoFilename},
		{"https://example.com/.", "", ErrNoFilename},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			u, err := url.Parse(test.in)
			require.NoError(t, err)
			name, err := FilenameFromURL(u)
			if test.err != nil {
				require.ErrorIs(t, err, test.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.want, name)
		})
	}
}
