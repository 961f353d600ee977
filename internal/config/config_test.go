package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load(New(""))
	require.NoError(t, err)

	assert.False(t, cfg.Motion.Reduced)
	assert.Equal(t, 0, cfg.Lines.Count)
	assert.Equal(t, 1.0, cfg.Lines.Speed)
	assert.True(t, cfg.Lines.Interactive)
	assert.Len(t, cfg.Lines.Palette, 4)
	assert.Equal(t, 768, cfg.Device.Breakpoint)
	assert.Equal(t, []string{"auto", "opengl"}, cfg.Window.Libraries)
	assert.Equal(t, 60, cfg.Headless.Hz)
	assert.Equal(t, 30, cfg.Terminal.Hz)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavefield.yaml")
	writeFile(t, path, "motion:\n  reduced: true\nlines:\n  count: 4\n  speed: 2.5\n")
	t.Setenv("WAVEFIELD_LINES_COUNT", "9")
	t.Setenv("WAVEFIELD_DEVICE_AGENT", "iPad")

	cfg, err := Load(New(path))
	require.NoError(t, err)
	assert.True(t, cfg.Motion.Reduced)
	assert.Equal(t, 9, cfg.Lines.Count, "env beats file")
	assert.Equal(t, 2.5, cfg.Lines.Speed)
	assert.Equal(t, "iPad", cfg.Device.Agent)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestWatchWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	v := New("")
	_, err := Load(v)
	require.NoError(t, err)
	assert.False(t, Watch(v, func(*Config, error) {}))
}

func TestWatchPushesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavefield.yaml")
	writeFile(t, path, "motion:\n  reduced: false\n")
	v := New(path)
	_, err := Load(v)
	require.NoError(t, err)

	var reduced atomic.Bool
	require.True(t, Watch(v, func(cfg *Config, err error) {
		if err == nil {
			reduced.Store(cfg.Motion.Reduced)
		}
	}))

	writeFile(t, path, "motion:\n  reduced: true\n")
	assert.Eventually(t, reduced.Load, 5*time.Second, 20*time.Millisecond)
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
