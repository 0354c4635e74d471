package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLoggerWritesFile(t *testing.T) {
	t.Cleanup(func() { Log = zap.NewNop().Sugar() })

	path := filepath.Join(t.TempDir(), "arena.log")
	cfg := DefaultConfig().Log
	cfg.File = path
	cfg.Console = false
	cfg.Level = "info"
	require.NoError(t, InitLogger(cfg))

	Log.Debugw("hidden")
	Log.Infow("player connected", "player", "abc")
	SyncLogger()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "player connected")
	require.NotContains(t, string(data), "hidden")
}

func TestInitLoggerRejectsBadConfig(t *testing.T) {
	t.Cleanup(func() { Log = zap.NewNop().Sugar() })

	require.Error(t, InitLogger(LogConfig{Level: "loud", Console: true}))
	require.Error(t, InitLogger(LogConfig{Level: "info"}))
}
