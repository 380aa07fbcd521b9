package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test execution defaults
	assert.Equal(t, uint64(1000000), cfg.Execution.MaxCycles, "MaxCycles should default to 1000000")
	assert.Equal(t, 3000, cfg.Execution.DefaultOrigin, "DefaultOrigin should default to 3000")

	// Test debugger defaults
	assert.Equal(t, 1000, cfg.Debugger.HistorySize, "HistorySize should default to 1000")
	assert.True(t, cfg.Debugger.ShowSource, "ShowSource should default to true")

	// Test display defaults
	assert.Equal(t, 8, cfg.Display.WordsPerLine, "WordsPerLine should default to 8")
	assert.Equal(t, "decimal", cfg.Display.NumberFormat, "NumberFormat should default to decimal")

	// Test trace defaults
	assert.Equal(t, 100000, cfg.Trace.MaxEntries, "MaxEntries should default to 100000")

	// Test statistics defaults
	assert.Equal(t, "json", cfg.Statistics.Format, "Format should default to json")
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	require.NotEmpty(t, path, "GetConfigPath should not return an empty string")
	assert.Equal(t, "config.toml", filepath.Base(path), "path should end with config.toml")

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "mixes" && path != "config.toml" {
			t.Errorf("Expected path in mixes directory or fallback, got %s", path)
		}
	}
}

func TestGetLogPath(t *testing.T) {
	path := GetLogPath()

	require.NotEmpty(t, path, "GetLogPath should not return an empty string")

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "logs" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		assert.Equal(t, "logs", filepath.Base(path), "path should end with logs")
	}
}

func TestSaveAndLoad(t *testing.T) {
	// Create a temporary directory for testing
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	// Create a config with custom values
	cfg := DefaultConfig()
	cfg.Execution.MaxCycles = 5000000
	cfg.Execution.EnableTrace = true
	cfg.Debugger.HistorySize = 500
	cfg.Display.ColorOutput = false
	cfg.Trace.FilterRegs = "rA,rX,rJ"

	require.NoError(t, cfg.SaveTo(configPath), "saving config should not error")

	_, err := os.Stat(configPath)
	require.False(t, os.IsNotExist(err), "config file was not created")

	loaded, err := LoadFrom(configPath)
	require.NoError(t, err, "loading config should not error")

	// Verify values match
	assert.Equal(t, uint64(5000000), loaded.Execution.MaxCycles)
	assert.True(t, loaded.Execution.EnableTrace)
	assert.Equal(t, 500, loaded.Debugger.HistorySize)
	assert.False(t, loaded.Display.ColorOutput)
	assert.Equal(t, "rA,rX,rJ", loaded.Trace.FilterRegs)
}

func TestLoadNonExistent(t *testing.T) {
	// Try to load from a non-existent file
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	// Should return default config without error
	cfg, err := LoadFrom(configPath)
	require.NoError(t, err, "LoadFrom should not error on non-existent file")

	assert.Equal(t, uint64(1000000), cfg.Execution.MaxCycles, "expected default config when file doesn't exist")
}

func TestLoadInvalidTOML(t *testing.T) {
	// Create a temporary file with invalid TOML
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[execution]
max_cycles = "not a number"  # Invalid: should be uint64
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidTOML), 0644), "failed to create test file")

	_, err := LoadFrom(configPath)
	assert.Error(t, err, "expected error when loading invalid TOML")
}

func TestSaveCreatesDirectory(t *testing.T) {
	// Create a temporary directory
	tempDir := t.TempDir()

	// Try to save to a path with non-existent subdirectories
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.SaveTo(configPath), "failed to save config")

	_, err := os.Stat(configPath)
	assert.False(t, os.IsNotExist(err), "config file was not created")

	dir := filepath.Dir(configPath)
	_, err = os.Stat(dir)
	assert.False(t, os.IsNotExist(err), "parent directories were not created")
}
