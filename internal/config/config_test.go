package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ogulcanaydogan/budget-intake/internal/config"
	"github.com/ogulcanaydogan/budget-intake/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Output.Dir)
	assert.False(t, cfg.Output.CRLF)
	assert.True(t, cfg.Output.Preflight)
	assert.Equal(t, "done", cfg.Prompt.Sentinel)
	assert.Equal(t, "real", cfg.Prompt.NumberKind)
	assert.Equal(t, model.KindReal, cfg.Kind())
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, filepath.Join(home, ".intake", "journal.db"), cfg.Journal.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_FromFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	data := []byte(`
output:
  dir: /tmp/figures
  crlf: true
prompt:
  sentinel: "Y"
  number_kind: integer
journal:
  enabled: false
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(cfgPath, data, 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/figures", cfg.Output.Dir)
	assert.True(t, cfg.Output.CRLF)
	assert.True(t, cfg.Output.Preflight)
	assert.Equal(t, "Y", cfg.Prompt.Sentinel)
	assert.Equal(t, model.KindInteger, cfg.Kind())
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_HomeConfig(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".intake"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".intake", "config.yaml"),
		[]byte("output:\n  dir: figures\n"), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "figures", cfg.Output.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("INTAKE_LOGGING_LEVEL", "error")
	t.Setenv("INTAKE_PROMPT_NUMBER_KIND", "integer")
	t.Setenv("INTAKE_OUTPUT_DIR", "elsewhere")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, model.KindInteger, cfg.Kind())
	assert.Equal(t, "elsewhere", cfg.Output.Dir)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	t.Cleanup(func() { os.Unsetenv("INTAKE_PROMPT_SENTINEL") })
	require.NoError(t, os.WriteFile(".env", []byte("INTAKE_PROMPT_SENTINEL=stop\n"), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "stop", cfg.Prompt.Sentinel)
}

func TestLoad_InvalidFile(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("invalid: [yaml"), 0o644))

	_, err := config.Load(cfgPath)
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad number kind", "prompt:\n  number_kind: float\n", "prompt.number_kind"},
		{"empty sentinel", "prompt:\n  sentinel: \"\"\n", "prompt.sentinel"},
		{"empty output dir", "output:\n  dir: \"\"\n", "output.dir"},
		{"journal without path", "journal:\n  enabled: true\n  path: \"\"\n", "journal.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			cfgPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(cfgPath, []byte(tt.yaml), 0o644))

			_, err := config.Load(cfgPath)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_YAML(t *testing.T) {
	isolate(t)
	cfg, err := config.Load("")
	require.NoError(t, err)

	data, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "number_kind: real")
	assert.Contains(t, string(data), "sentinel: done")
	assert.Contains(t, string(data), "dir: data")
}
