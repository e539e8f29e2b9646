//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlfetch

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FilenameFromURL returns the percent-decoded last segment of the URL path.
// ErrNoFilename is returned when the path is empty or ends with a slash.
func FilenameFromURL(u *url.URL) (string, error) {
	p, err := url.PathUnescape(u.EscapedPath())
	if err != nil {
		return "", &InvalidFormatError{Err: err}
	}
	name := p[strings.LastIndex(p, "/")+1:]
	if name == "" || name == "." || name == ".." {
		return "", ErrNoFilename
	}
	return name, nil
}

// createPartFile creates the temporary file that receives the body of a
// download targeting path. It lives in the same directory so the final
// rename never crosses file systems. The name does not derive from the
// target, which may already be as long as the file system allows.
func createPartFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	return os.CreateTemp(dir, ".curlfetch-*.part")
}
