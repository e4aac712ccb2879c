package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")
	t.Setenv("CHAT_ORDERING", "")
	t.Setenv("PROMOTE_ENABLED", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, ChatOrderCreated, cfg.ChatOrdering)
	assert.True(t, cfg.PromoteEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("CHAT_ORDERING", "RECENT")
	t.Setenv("PROMOTE_ENABLED", "false")
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example.org/")

	cfg := Load()

	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, ChatOrderRecent, cfg.ChatOrdering)
	assert.False(t, cfg.PromoteEnabled)
	assert.Equal(t, "https://cdn.example.org", cfg.PublicBaseURL)
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	assert.Equal(t, 120, getEnvInt("RATE_LIMIT_PER_MINUTE", 120))
}

func TestUnknownChatOrderingFallsBack(t *testing.T) {
	t.Setenv("CHAT_ORDERING", "alphabetical")
	assert.Equal(t, ChatOrderCreated, Load().ChatOrdering)
}
