// Package trigger provides the codegen driver command: it normalizes a
// requested list of generation kinds, pins a dependency revision and
// runs one generation subprocess per kind. The built-in generation
// kinds live in their own packages and are reached through the gen
// subcommand.
package trigger

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/goaux/contextvalue"
	"github.com/goaux/iter/bufioscanner"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/takumakei/docgen-go/execrun"
	"github.com/takumakei/docgen-go/lintdoc"
	"github.com/takumakei/docgen-go/rules"
	"github.com/takumakei/docgen-go/tokens"
)

// Main is the entry point of the docgen command.
func Main(ctx context.Context, config Config) {
	cmd := New(config)
	ctx = contextvalue.With(ctx, &config)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err.Error())
		os.Exit(1)
	}
}

// New builds the command tree.
func New(config Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     config.Use,
		Short:   config.Short,
		Long:    render(config.Long),
		Version: config.Version,

		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.CompletionOptions.HiddenDefaultCmd = true

	run := &cobra.Command{
		Use:   "run",
		Short: "Normalize the kind list and run one generation per kind",
		Args:  cobra.NoArgs,
		RunE:  runRun,
	}
	fl := run.Flags()
	fl.SortFlags = false
	fl.StringVarP(&flags.Kinds, "kinds", "k", "", "Generation `kinds`, separated by commas or newlines; - reads stdin")
	fl.StringVarP(&flags.Revision, "revision", "r", "", "Dependency `revision` to pin before generating")
	fl.StringVar(&flags.VersionString, "version-string", "", "Version `string` exported to the generation subprocesses")
	fl.StringVarP(&flags.Config, "config", "c", "", "Config `file` (default "+defaultConfigFile+" if present)")
	fl.StringArrayVar(&flags.Command, "command", nil, "Generation `command` argv (default: this executable with gen)")
	fl.StringArrayVar(&flags.UpdateCommand, "update-command", nil, "Dependency update `command` argv; {revision} expands to the revision")
	cmd.AddCommand(run)

	gen := &cobra.Command{
		Use:   "gen kind",
		Short: "Run one built-in generation kind",
		Args:  cobra.ExactArgs(1),
		RunE:  runGen,

		ValidArgsFunction: func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
			return kindNames, cobra.ShellCompDirectiveNoFileComp
		},
	}
	fl = gen.Flags()
	fl.SortFlags = false
	fl.StringVarP(&flags.Manifest, "manifest", "m", config.DefaultManifest, "Rule manifest `filename.yaml`")
	fl.StringVarP(&flags.Site, "site", "s", config.DefaultSite, "Website root `directory`")
	fl.StringVar(&flags.Checker, "checker", config.DefaultChecker, "Checker `executable` run against documentation code blocks")
	fl.BoolVarP(&flags.Format, "format", "F", config.DefaultFormat, "Pipe generated pages through the formatter")
	fl.StringArrayVar(&flags.Formatter, "formatter", config.DefaultFormatter, "Formatter `command` argv used with --format")
	gen.MarkFlagFilename("manifest", "yaml", "yml")
	gen.MarkFlagDirname("site")
	cmd.AddCommand(gen)

	return cmd
}

var kindNames = []string{"lintdoc", "rules-sources"}

func render(usage string) string {
	if isTTY(os.Stdout) {
		r, err := glamour.NewTermRenderer(
			glamour.WithEnvironmentConfig(),
			glamour.WithWordWrap(100),
		)
		if err == nil { // if NO error
			if s, err := r.Render(usage); err == nil { // if NO error
				return s
			}
		}
	}
	return usage
}

var flags flagsType

type flagsType struct {
	// run
	Kinds         string
	Revision      string
	VersionString string
	Config        string
	Command       []string
	UpdateCommand []string

	// gen
	Manifest  string
	Site      string
	Checker   string
	Format    bool
	Formatter []string
}

func runRun(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(flags.Config)
	if err != nil {
		return err
	}
	if flags.Kinds != "" {
		settings.Kinds = flags.Kinds
	}
	if flags.Revision != "" {
		settings.Revision = flags.Revision
	}
	if flags.VersionString != "" {
		settings.Version = flags.VersionString
	}
	if len(flags.Command) > 0 {
		settings.Command = flags.Command
	}
	if len(flags.UpdateCommand) > 0 {
		settings.UpdateCommand = flags.UpdateCommand
	}
	if settings.Version == "" {
		if config, ok := contextvalue.From[*Config](cmd.Context()); ok {
			settings.Version = config.Version
		}
	}

	logger := newLogger(settings.LogLevel())
	kinds, err := readKinds(settings, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(kinds) == 0 {
		// the dependency pin still has to move even when there is
		// nothing to generate
		logger.Info("no kinds requested, nothing to generate")
	}
	return Dispatch(cmd.Context(), execrun.Local{}, settings, kinds, logger)
}

// readKinds normalizes the kind list; "-" takes the list from stdin.
func readKinds(s Settings, stdin io.Reader) ([]string, error) {
	if s.Kinds != "-" {
		return tokens.Kinds(s.Kinds), nil
	}
	var lines []string
	sc := bufioscanner.New(bufio.NewScanner(stdin))
	for _, line := range sc.Text() {
		lines = append(lines, line)
	}
	return tokens.Kinds(strings.Join(lines, "\n")), nil
}

func runGen(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(flags.Config)
	if err != nil {
		return err
	}
	logger := newLogger(settings.LogLevel())

	reg, err := rules.Load(flags.Manifest)
	if err != nil {
		return err
	}
	opts := lintdoc.Options{
		SiteDir:   flags.Site,
		Analyzer:  lintdoc.Checker{Name: flags.Checker},
		Format:    flags.Format,
		Formatter: flags.Formatter,
		Logger:    logger,
	}

	switch kind := args[0]; kind {
	case "lintdoc":
		return lintdoc.Generate(cmd.Context(), reg, opts)
	case "rules-sources":
		return lintdoc.GenerateSources(reg, opts)
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   lvl,
		NoColor: !isTTY(os.Stderr),
	}))
}

func isTTY(io any) bool {
	if f, ok := io.(*os.File); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}
