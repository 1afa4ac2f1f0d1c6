package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("EMACHAT_CONFIG", "")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "Me", cfg.UserLabel)
	assert.Equal(t, "ChatGPT", cfg.BotLabel)
	assert.Equal(t, "Pergunte a Ema IA", cfg.Placeholder)
	assert.Equal(t, ":8100", cfg.EchoBotAddr)
	assert.False(t, cfg.Markdown)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emachat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bot_label: Ema\nlog_dir: /tmp/ema\nechobot_delay: 5ms\nmarkdown: true\n"), 0o644))

	t.Run("file values apply", func(t *testing.T) {
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "Ema", cfg.BotLabel)
		assert.Equal(t, "/tmp/ema", cfg.LogDir)
		assert.Equal(t, 5*time.Millisecond, cfg.EchoBotDelay)
		assert.True(t, cfg.Markdown)
		assert.Equal(t, "Me", cfg.UserLabel)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("EMACHAT_BOT_LABEL", "Bot")
		t.Setenv("ECHOBOT_DELAY", "1s")
		t.Setenv("EMACHAT_MARKDOWN", "false")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "Bot", cfg.BotLabel)
		assert.Equal(t, time.Second, cfg.EchoBotDelay)
		assert.False(t, cfg.Markdown)
	})

	t.Run("EMACHAT_CONFIG used when no path", func(t *testing.T) {
		t.Setenv("EMACHAT_CONFIG", path)
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "Ema", cfg.BotLabel)
	})
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("EMACHAT_CONFIG", "")
	t.Setenv("ECHOBOT_DELAY", "soon")
	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestChatbotEndpoint(t *testing.T) {
	assert.Equal(t, "ws://localhost:8100/stream/chatbot/ws/", ChatbotEndpoint)
}
