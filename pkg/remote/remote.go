// Package remote runs shell commands on named remote hosts.
//
// This is the narrow seam to the infrastructure that provisions and reaches
// test database hosts. Callers only ever need "run this command on that
// host"; how the host is reached is the runner's concern.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
)

// Result carries the outcome of a completed remote command.
type Result struct {
	ExitStatus int
	Stdout     string
	Stderr     string
}

// Runner executes a command on a named host.
type Runner interface {
	// Run executes command on host, feeding it stdin when non-nil. A
	// non-zero exit returns both the result and a CommandError.
	Run(ctx context.Context, host, command string, stdin io.Reader) (*Result, error)
}

// CommandError reports a remote command that exited non-zero.
type CommandError struct {
	Host       string
	Command    string
	ExitStatus int
	Stderr     string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("remote command failed on %s with status %d: %s", e.Host, e.ExitStatus, e.Command)
}

// CommandRunner shells out to a host-access binary, ssh by default.
type CommandRunner struct {
	// Binary is the host-access command. Empty means "ssh".
	Binary string

	// Args are inserted before the host argument, e.g. connection options.
	Args []string

	Logger *slog.Logger
}

// NewCommandRunner returns a runner invoking binary with the given leading
// arguments. If logger is nil, a discard logger is used.
func NewCommandRunner(binary string, logger *slog.Logger, args ...string) *CommandRunner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CommandRunner{Binary: binary, Args: args, Logger: logger}
}

func (r *CommandRunner) Run(ctx context.Context, host, command string, stdin io.Reader) (*Result, error) {
	binary := r.Binary
	if binary == "" {
		binary = "ssh"
	}

	argv := make([]string, 0, len(r.Args)+2)
	argv = append(argv, r.Args...)
	argv = append(argv, host, command)

	r.logger().Debug("running remote command", "host", host, "command", command)

	cmd := exec.CommandContext(ctx, binary, argv...)
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitStatus = exitErr.ExitCode()
			return result, &CommandError{
				Host:       host,
				Command:    command,
				ExitStatus: result.ExitStatus,
				Stderr:     result.Stderr,
			}
		}
		return nil, fmt.Errorf("failed to run remote command on %s: %w", host, err)
	}
	return result, nil
}

func (r *CommandRunner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

var _ Runner = (*CommandRunner)(nil)
