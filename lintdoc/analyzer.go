package lintdoc

import (
	"bytes"
	"context"
	"path"
	"strings"

	"github.com/takumakei/docgen-go/execrun"
)

// Diagnostic is one finding reported for a documentation code block.
type Diagnostic struct {
	Category string
	Message  string
}

// CodeBlock is a snippet extracted from rule documentation, together
// with the synthetic path it is checked under.
type CodeBlock struct {
	// Path is "<group>/<rule><ext>", eg. "a11y/noBlankTarget.js".
	Path string
	Lang string
	Code string
}

// Analyzer checks a code block and reports its diagnostics. The
// generator asserts the diagnostic count against the block attributes.
type Analyzer interface {
	Analyze(ctx context.Context, block CodeBlock) ([]Diagnostic, error)
}

// Checker analyzes code blocks by piping them through an external lint
// command.
type Checker struct {
	Runner execrun.Runner

	// Name is the executable, Args the leading arguments placed before
	// the fixed check options.
	Name string
	Args []string
}

// Analyze invokes the checker with the block on stdin. A zero exit
// status means no diagnostics; a non-zero one yields a single
// diagnostic carrying the checker output.
func (c Checker) Analyze(ctx context.Context, block CodeBlock) ([]Diagnostic, error) {
	runner := c.Runner
	if runner == nil {
		runner = execrun.Local{}
	}
	args := append([]string{}, c.Args...)
	args = append(args, "check", "--no-errors-on-unmatched", "--stdin-file-path="+block.Path)

	out := new(bytes.Buffer)
	err := runner.Run(ctx, execrun.Command{
		Name:   c.Name,
		Args:   args,
		Stdin:  strings.NewReader(block.Code),
		Stdout: out,
		Stderr: out,
	})
	if err == nil {
		return nil, nil
	}
	if execrun.ExitCode(err) == 1 {
		return []Diagnostic{{
			Category: "lint/" + strings.TrimSuffix(block.Path, path.Ext(block.Path)),
			Message:  strings.TrimSpace(out.String()),
		}}, nil
	}
	return nil, err
}
