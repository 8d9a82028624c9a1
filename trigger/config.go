package trigger

import (
	"fmt"
	"os"
	"sort"
	"strings"

	env "github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Config customizes the command built by Main.
type Config struct {
	Use     string
	Short   string
	Long    string
	Version string

	DefaultManifest  string
	DefaultSite      string
	DefaultChecker   string
	DefaultFormat    bool
	DefaultFormatter []string
}

// envPrefix is the prefix of the environment variables read by the run
// command and exported to every generation subprocess.
const envPrefix = "DOCGEN_"

// defaultConfigFile is picked up from the working directory when no
// --config flag is given.
const defaultConfigFile = "docgen.toml"

// Settings are the inputs of a trigger run, merged from flags, the
// environment and the optional TOML config file (flags win over the
// environment, the environment over the file).
type Settings struct {
	// Kinds is the raw kind list; "-" reads the list from stdin.
	Kinds    string `env:"KINDS"`
	Revision string `env:"REVISION"`
	Version  string `env:"VERSION"`

	// Command is the generation command argv; the kind is appended as
	// its sole extra argument. Empty means the current executable with
	// "gen" prepended.
	Command []string

	// UpdateCommand is the dependency-update argv. Every "{revision}"
	// in its elements is replaced with the Revision value.
	UpdateCommand []string

	// Env overrides entries of the child environment.
	Env map[string]string
}

type fileConfig struct {
	Command       []string          `toml:"command"`
	UpdateCommand []string          `toml:"update_command"`
	Env           map[string]string `toml:"env"`
}

func loadSettings(path string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Prefix: envPrefix}); err != nil {
		return Settings{}, err
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("config load failed (%s): %w", path, err)
		}
		var f fileConfig
		if err := toml.Unmarshal(data, &f); err != nil {
			return Settings{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
		s.Command = f.Command
		s.UpdateCommand = f.UpdateCommand
		s.Env = f.Env
	}
	return s, nil
}

// LogLevel returns the log-level value exported to subprocesses; the
// trigger's own logger follows it.
func (s Settings) LogLevel() string {
	if v, ok := s.Env[envPrefix+"LOG"]; ok {
		return v
	}
	if v := os.Getenv(envPrefix + "LOG"); v != "" {
		return v
	}
	return "info"
}

// ChildEnv returns the environment entries set once per run and
// inherited by every invocation: log level, backtrace toggle,
// incremental-build toggle and the version string. The values are not
// interpreted here beyond merging, they are contracts of the external
// commands.
func (s Settings) ChildEnv() []string {
	merged := map[string]string{
		envPrefix + "LOG":         "info",
		envPrefix + "BACKTRACE":   "1",
		envPrefix + "INCREMENTAL": "0",
	}
	for k, v := range s.Env {
		merged[k] = v
	}
	if s.Version != "" {
		merged[envPrefix+"VERSION"] = s.Version
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+merged[k])
	}
	return out
}

func expandRevision(argv []string, revision string) []string {
	out := make([]string, len(argv))
	for i, a := range argv {
		out[i] = strings.ReplaceAll(a, "{revision}", revision)
	}
	return out
}
