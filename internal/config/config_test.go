package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blocgdp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data/country_bloc_periods.csv", cfg.Inputs.Periods)
	assert.Equal(t, "blocgdp.db", cfg.Store.Path)
	assert.Equal(t, "Other", cfg.Summary.Other)
	assert.Zero(t, cfg.Summary.MinShare)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, "inputs:\n  periods: custom/periods.csv\nsummary:\n  min_share: 1.5\n  order: [British Empire, China]\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom/periods.csv", cfg.Inputs.Periods)
	assert.Equal(t, "data/maddison_world_gdp.csv", cfg.Inputs.GDP)
	assert.Equal(t, 1.5, cfg.Summary.MinShare)
	assert.Equal(t, []string{"British Empire", "China"}, cfg.Summary.Order)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadRejectsInvalidLevel(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsOutOfRangeMinShare(t *testing.T) {
	path := writeConfig(t, "summary:\n  min_share: 150\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "inputs:\n  periods: from-file.csv\n")
	t.Setenv("BLOCGDP_PERIODS", "from-env.csv")
	t.Setenv("BLOCGDP_DB", "env.db")

	cfg, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", cfg.Inputs.Periods)
	assert.Equal(t, "env.db", cfg.Store.Path)
}
