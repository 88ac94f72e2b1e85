// Copyright (c) 2025 Food and Agriculture Organization of the United Nations
// (FAO). All rights reserved. Use of this source code is governed by the BSD
// 3-Clause license that can be found in the LICENSE file.

package main

import (
	"os/exec"
	"runtime"
)

// hostOpener opens documents with the default application of the running
// platform, using its desktop launcher command.
type hostOpener struct {
	cmd []string
}

// newHostOpener selects the launcher command for the current platform.
func newHostOpener() *hostOpener {
	switch runtime.GOOS {
	case "linux":
		return &hostOpener{cmd: []string{"xdg-open"}}
	case "darwin":
		return &hostOpener{cmd: []string{"open"}}
	case "windows":
		return &hostOpener{cmd: []string{"cmd", "/c", "start", ""}}
	default:
		return &hostOpener{}
	}
}

// Supported implements doccache.Opener. It reports whether the launcher
// command exists in PATH.
func (o *hostOpener) Supported() bool {
	if len(o.cmd) == 0 {
		return false
	}
	_, err := exec.LookPath(o.cmd[0])

	return err == nil
}

// Open implements doccache.Opener. It does not wait for the launched
// application to exit.
func (o *hostOpener) Open(path string) error {
	args := append(append([]string{}, o.cmd[1:]...), path)

	return exec.Command(o.cmd[0], args...).Start() //nolint:wrapcheck
}
