//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlfetch

// Revealer shows a file in the host file manager.
type Revealer interface {
	Reveal(path string) error
}

// RevealerFunc adapts a function to the Revealer interface.
type RevealerFunc func(path string) error

// Reveal calls f(path).
func (f RevealerFunc) Reveal(path string) error {
	return f(path)
}

// NopRevealer does nothing.
type NopRevealer struct{}

// Reveal always succeeds.
func (NopRevealer) Reveal(string) error {
	return nil
}

type unsupportedRevealer struct{}

func (unsupportedRevealer) Reveal(string) error {
	return ErrRevealUnsupported
}
