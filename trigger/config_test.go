package trigger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildEnvDefaults(t *testing.T) {
	env := Settings{}.ChildEnv()
	assert.Equal(t, []string{
		"DOCGEN_BACKTRACE=1",
		"DOCGEN_INCREMENTAL=0",
		"DOCGEN_LOG=info",
	}, env)
}

func TestChildEnvOverridesAndVersion(t *testing.T) {
	s := Settings{
		Version: "2.0.0",
		Env: map[string]string{
			"DOCGEN_LOG":         "trace",
			"DOCGEN_INCREMENTAL": "1",
		},
	}
	assert.Equal(t, []string{
		"DOCGEN_BACKTRACE=1",
		"DOCGEN_INCREMENTAL=1",
		"DOCGEN_LOG=trace",
		"DOCGEN_VERSION=2.0.0",
	}, s.ChildEnv())
}

func TestLogLevel(t *testing.T) {
	t.Setenv("DOCGEN_LOG", "")
	assert.Equal(t, "info", Settings{}.LogLevel())
	s := Settings{Env: map[string]string{"DOCGEN_LOG": "debug"}}
	assert.Equal(t, "debug", s.LogLevel())
}

func TestLogLevelFromProcessEnvironment(t *testing.T) {
	t.Setenv("DOCGEN_LOG", "warn")
	assert.Equal(t, "warn", Settings{}.LogLevel())

	// a configured value wins over the inherited one
	s := Settings{Env: map[string]string{"DOCGEN_LOG": "debug"}}
	assert.Equal(t, "debug", s.LogLevel())
}

func TestExpandRevision(t *testing.T) {
	argv := []string{"cargo", "add", "lint-core", "--rev", "{revision}"}
	got := expandRevision(argv, "0a1b2c3")
	assert.Equal(t, []string{"cargo", "add", "lint-core", "--rev", "0a1b2c3"}, got)
	// the input is not modified
	assert.Equal(t, "{revision}", argv[4])
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("DOCGEN_KINDS", "lintdoc, rules-sources")
	t.Setenv("DOCGEN_REVISION", "deadbeef")

	path := filepath.Join(t.TempDir(), "docgen.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
command = ["make", "gen"]
update_command = ["cargo", "add", "lint-core", "--rev", "{revision}"]

[env]
DOCGEN_LOG = "debug"
`), 0o644))

	s, err := loadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "lintdoc, rules-sources", s.Kinds)
	assert.Equal(t, "deadbeef", s.Revision)
	assert.Equal(t, []string{"make", "gen"}, s.Command)
	assert.Equal(t, []string{"cargo", "add", "lint-core", "--rev", "{revision}"}, s.UpdateCommand)
	assert.Equal(t, "debug", s.LogLevel())
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := loadSettings(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestReadKindsFromStdin(t *testing.T) {
	kinds, err := readKinds(Settings{Kinds: "-"}, strings.NewReader("lintdoc\n\n  rules-sources  \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"lintdoc", "rules-sources"}, kinds)
}
