package execrun_test

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/goaux/results"
	"github.com/stretchr/testify/assert"

	"github.com/takumakei/docgen-go/execrun"
)

func Example() {
	results.Must(execrun.CheckPath("tr"))

	out := new(bytes.Buffer)
	results.Must(execrun.Pipe(out, strings.NewReader("hello world"), "tr", "a-z", "A-Z"))
	fmt.Print(out.String())
	// Output:
	// HELLO WORLD
}

func TestLocalRun(t *testing.T) {
	out := new(bytes.Buffer)
	err := execrun.Local{}.Run(context.Background(), execrun.Command{
		Name:   "sh",
		Args:   []string{"-c", "echo $EXECRUN_TEST"},
		Env:    []string{"EXECRUN_TEST=ok"},
		Stdout: out,
	})
	assert.NoError(t, err)
	assert.Equal(t, "ok\n", out.String())
}

func TestLocalRunFailure(t *testing.T) {
	err := execrun.Local{}.Run(context.Background(), execrun.Command{
		Name:   "sh",
		Args:   []string{"-c", "exit 3"},
		Stdout: new(bytes.Buffer),
		Stderr: new(bytes.Buffer),
	})
	assert.Error(t, err)
	assert.Equal(t, 3, execrun.ExitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, execrun.ExitCode(nil))
	assert.Equal(t, 127, execrun.ExitCode(&exec.Error{Name: "nope", Err: exec.ErrNotFound}))
	assert.Equal(t, 1, execrun.ExitCode(fmt.Errorf("plain")))
}

func TestPipeFailureIncludesStderr(t *testing.T) {
	out := new(bytes.Buffer)
	err := execrun.Pipe(out, strings.NewReader(""), "sh", "-c", "echo boom >&2; exit 1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
