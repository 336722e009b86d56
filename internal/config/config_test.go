package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv(OutputDirEnv, "")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
	assert.Equal(t, "/var/task/output", config.API.OutputDir)
	assert.Len(t, config.Plot.Scenarios, 2)
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfig(t, `
api:
  address: "127.0.0.1:9000"
  output_dir: "/srv/results"
audit:
  enabled: true
  db_path: "/tmp/audit.db"
`)
	t.Setenv(ConfigPathEnv, path)
	t.Setenv(OutputDirEnv, "")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", config.API.Address)
	assert.Equal(t, "/srv/results", config.API.OutputDir)
	assert.True(t, config.Audit.Enabled)
	assert.Equal(t, "/tmp/audit.db", config.Audit.DBPath)
	// untouched keys keep their defaults
	assert.Equal(t, 15, config.API.ShutdownTimeout)
	assert.Equal(t, "plots", config.Plot.OutputDir)
}

func TestLoadConfig_OutputDirOverride(t *testing.T) {
	t.Setenv(ConfigPathEnv, writeConfig(t, "api:\n  output_dir: /srv/results\n"))
	t.Setenv(OutputDirEnv, "/data/output")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/data/output", config.API.OutputDir)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "missing explicit file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.yml")
			},
			wantErr: true,
		},
		{
			name: "invalid yaml",
			path: func(t *testing.T) string {
				return writeConfig(t, "api: [")
			},
			wantErr: true,
		},
		{
			name: "empty output dir",
			path: func(t *testing.T) string {
				return writeConfig(t, "api:\n  output_dir: \"\"\n")
			},
			wantErr: true,
		},
		{
			name: "audit enabled without db path",
			path: func(t *testing.T) string {
				return writeConfig(t, "audit:\n  enabled: true\n  db_path: \"\"\n")
			},
			wantErr: true,
		},
		{
			name: "scenario without name",
			path: func(t *testing.T) string {
				return writeConfig(t, "plot:\n  scenarios:\n    - csv: a.csv\n")
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnv, tt.path(t))
			t.Setenv(OutputDirEnv, "")

			_, err := LoadConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, Timeout(30))
	assert.Equal(t, time.Duration(0), Timeout(0))
}

func TestLoadConfig_ScenariosReplaceDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnv, writeConfig(t, `
plot:
  scenarios:
    - csv: only.csv
      name: Only
`))
	t.Setenv(OutputDirEnv, "")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []ScenarioConfig{{CSV: "only.csv", Name: "Only"}}, config.Plot.Scenarios)
}
