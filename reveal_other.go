//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build !windows

package curlfetch

// DefaultRevealer returns the revealer for the host platform. Only Windows
// Explorer is supported, elsewhere it reports ErrRevealUnsupported.
func DefaultRevealer() Revealer {
	return unsupportedRevealer{}
}
