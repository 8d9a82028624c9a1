// Package execrun executes the external commands the generators depend
// on: the per-kind generation subprocesses, the dependency updater, the
// code-block checker and the optional page formatter.
package execrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/goaux/stacktrace/v2"
)

// CheckPath checks if the given executable exists in the system's PATH.
// It returns an error if the executable is not found, or nil if it is.
func CheckPath(executable string) error {
	_, err := stacktrace.Trace2(exec.LookPath(executable))
	return err
}

// Command describes a single external invocation.
type Command struct {
	Name string
	Args []string

	// Env entries are appended to the parent environment of the child
	// process. Empty means the child inherits the parent environment
	// unchanged.
	Env []string

	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner runs external commands. Tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// Local runs commands on the local host.
type Local struct{}

func (Local) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if err := stacktrace.Trace(cmd.Run()); err != nil {
		return fmt.Errorf("%s: exit=%d, cause=%w", c.Name, ExitCode(err), err)
	}
	return nil
}

// ExitCode reports the exit code carried by err. It returns 0 for nil,
// 127 when the executable could not be started and 1 for errors that
// carry no exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return 127
	}
	return 1
}

// Pipe executes an external command with the given arguments, writing r
// to its stdin and piping its stdout to w. Stderr is captured and, on
// failure, included in the returned error together with the command
// name.
func Pipe(w io.Writer, r io.Reader, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = r
	cmd.Stdout = w
	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr
	if err := stacktrace.Trace(cmd.Run()); err != nil {
		return fmt.Errorf("error: %s, cause=%w, stderr=%q", name, err, stderr.String())
	}
	return nil
}
