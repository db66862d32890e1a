//go:build !windows

package process

import "os/exec"

// hideWindow is a no-op where processes have no console window.
func hideWindow(_ *exec.Cmd) {}
