package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysmon/internal/logger"
)

func TestWatchRequiresPath(t *testing.T) {
	err := Watch("", func(*Config) {})
	require.Error(t, err)
}

func TestWatchMissingFile(t *testing.T) {
	isolate(t)
	err := Watch(filepath.Join(t.TempDir(), "missing.yaml"), func(*Config) {})
	require.Error(t, err)
}

func TestWatchReloadsValidChanges(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping filesystem watch test in short mode")
	}
	isolate(t)
	buf := logger.NewBufferLogger()
	logger.SetDefault(buf)
	t.Cleanup(func() { logger.SetDefault(logger.NewEnvLogger("[sysmon]")) })

	path := writeConfig(t, t.TempDir(), "config.yaml", "refresh_rate: 1\n")

	var mu sync.Mutex
	var latest *Config
	require.NoError(t, Watch(path, func(cfg *Config) {
		mu.Lock()
		defer mu.Unlock()
		latest = cfg
	}))

	// An invalid edit is skipped.
	require.NoError(t, os.WriteFile(path, []byte("refresh_rate: -1\n"), 0644))
	require.Eventually(t, func() bool { return buf.HasLevel("warn") }, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("refresh_rate: 2.5\nmax_history_points: 10\n"), 0644))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return latest != nil && latest.RefreshRate == 2.5 && latest.MaxHistoryPoints == 10
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.NoError(t, Validate(latest))
}
