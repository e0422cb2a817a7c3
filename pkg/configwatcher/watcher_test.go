package configwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gridiron_backend/internal/config"

	"github.com/stretchr/testify/require"
)

const baseConfig = `
server:
  mode: %s
jwt:
  secret: watcher-test-secret-at-least-32-chars
database:
  driver: sqlite
`

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sprintfMode("release")), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, dir, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// 给 watcher 注册目录的时间
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(sprintfMode("debug")), 0o644))

	select {
	case cfg := <-reloaded:
		require.Equal(t, "debug", cfg.Server.Mode)
	case <-time.After(10 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func sprintfMode(mode string) string {
	return fmt.Sprintf(baseConfig, mode)
}
