package logger

import (
	"path/filepath"
	"testing"

	"gridiron_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestApplyConfigSwitchesLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "release"
	cfg.Log.File = filepath.Join(t.TempDir(), "app.log")
	InitLogger(cfg)
	t.Cleanup(func() { Log = zap.NewNop() })

	assert.Equal(t, zap.InfoLevel, Level())

	cfg.Server.Mode = "debug"
	ApplyConfig(cfg)
	assert.Equal(t, zap.DebugLevel, Level())

	cfg.Server.Mode = "release"
	ApplyConfig(cfg)
	assert.Equal(t, zap.InfoLevel, Level())
}
