//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build windows

package curlfetch

import (
	"os/exec"
	"path/filepath"
)

type explorerRevealer struct{}

// Reveal opens Explorer with path selected. Explorer's exit status carries
// no meaning, so the process is started and left alone.
func (explorerRevealer) Reveal(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	cmd := exec.Command("explorer.exe", "/select,", abs)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// DefaultRevealer returns the revealer for the host platform.
func DefaultRevealer() Revealer {
	return explorerRevealer{}
}
