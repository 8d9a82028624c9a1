package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/goaux/stacktrace/v2"

	"github.com/takumakei/docgen-go/execrun"
)

// Dispatch updates the dependency pin when a revision is set, then runs
// one generation subprocess per kind, in order. The first failing
// invocation aborts the rest of the sequence. An empty kind list is not
// an error, it performs zero invocations.
func Dispatch(ctx context.Context, runner execrun.Runner, s Settings, kinds []string, logger *slog.Logger) error {
	childEnv := s.ChildEnv()

	if s.Revision != "" {
		if len(s.UpdateCommand) == 0 {
			return errors.New("revision given but no update command configured")
		}
		argv := expandRevision(s.UpdateCommand, s.Revision)
		logger.Info("updating dependency pin", "revision", s.Revision)
		err := runner.Run(ctx, execrun.Command{Name: argv[0], Args: argv[1:], Env: childEnv})
		if err != nil {
			return fmt.Errorf("dependency update failed: %w", err)
		}
	}

	command := s.Command
	if len(command) == 0 {
		exe, err := stacktrace.Trace2(os.Executable())
		if err != nil {
			return err
		}
		command = []string{exe, "gen"}
	}

	for _, kind := range kinds {
		logger.Info("generating", "kind", kind)
		args := append(slices.Clone(command[1:]), kind)
		err := runner.Run(ctx, execrun.Command{Name: command[0], Args: args, Env: childEnv})
		if err != nil {
			return fmt.Errorf("generation of %s failed: %w", kind, err)
		}
	}
	return nil
}
