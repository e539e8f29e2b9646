//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlfetch

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// contentDecoder wraps body with a decompressor for the given
// Content-Encoding. Unknown or identity encodings return body as is and
// ok set to false.
func contentDecoder(encoding string, body io.Reader) (r io.Reader, closer func(), ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "gzip", "x-gzip":
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, nil, false, fmt.Errorf("creating gzip reader: %w", err)
		}
		return gz, func() { _ = gz.Close() }, true, nil
	case "deflate":
		zl, err := zlib.NewReader(body)
		if err != nil {
			return nil, nil, false, fmt.Errorf("creating deflate reader: %w", err)
		}
		return zl, func() { _ = zl.Close() }, true, nil
	case "zstd":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, nil, false, fmt.Errorf("creating zstd reader: %w", err)
		}
		return zr, zr.Close, true, nil
	default:
		return body, func() {}, false, nil
	}
}
