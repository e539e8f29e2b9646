//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package curlfetch downloads a file described by a browser "copy as cURL"
// command. The command is parsed into a URL and a set of request headers,
// the headers that would turn the response into a partial or conditional
// one are dropped, and the file is fetched and saved under the last segment
// of the URL path.
//
// Progress and errors are reported through a caller supplied LogFunc, so a
// front end can render them as they happen.
package curlfetch
