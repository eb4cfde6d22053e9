package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.AWSProfile)
	assert.Empty(t, cfg.AWSRegion)
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := SaveConfig(&Config{AWSProfile: "staging", AWSRegion: "eu-west-1"})
	require.NoError(t, err)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.AWSProfile)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)
}

func TestSetProfileKeepsRegion(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, SetRegion("us-west-2"))
	require.NoError(t, SetProfile("prod"))

	assert.Equal(t, "prod", GetSavedProfile())
	assert.Equal(t, "us-west-2", GetSavedRegion())
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".stratus")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("aws_profile: [oops"), 0644))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGetConfigPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".stratus", "config.yaml"), GetConfigPath())
	assert.Equal(t, filepath.Join(home, ".stratus", "history"), GetHistoryPath())
}
