// Package process runs short-lived helper executables (dotnet, vswhere) and
// captures their output.
package process

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait drains I/O after the child is killed.
const waitDelay = 100 * time.Millisecond

// Command describes a single invocation.
type Command struct {
	Name       string   // Executable name or path.
	Args       []string // Arguments, excluding the executable.
	Dir        string   // Working directory (empty = current).
	Env        []string // KEY=VALUE pairs appended to the parent environment.
	HideWindow bool     // Suppress the console window on Windows.
}

// Runner executes a command and returns its stdout, stderr, and error.
// This interface enables testing without spawning real subprocesses.
type Runner interface {
	Run(ctx context.Context, cmd Command) (stdout []byte, stderr []byte, err error)
}

// ExecRunner is the default Runner backed by exec.CommandContext. The child is
// killed when ctx is done.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, c Command) ([]byte, []byte, error) {
	//nolint:gosec // Executable comes from configuration or a fixed name.
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = MergeEnv(os.Environ(), c.Env)
	if c.HideWindow {
		hideWindow(cmd)
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// MergeEnv appends overrides to base. Later entries win when the child process
// reads its environment, so an override replaces an inherited value.
func MergeEnv(base, overrides []string) []string {
	env := make([]string, 0, len(base)+len(overrides))
	env = append(env, base...)
	return append(env, overrides...)
}

// IsExitError reports whether err is a non-zero exit from a process that did
// start. Such a process produced output worth inspecting.
func IsExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
