package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"plant-bot/internal/domain/entity"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DEDUP_POLICY", "")
	t.Setenv("DEFAULT_LOCALE", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("MAX_UPLOAD_MB", "")
	t.Setenv("MAX_IMAGE_PIXELS", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, entity.DedupByPair, cfg.DedupPolicy)
	require.Equal(t, entity.LocaleZhTW, cfg.DefaultLocale)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 10*1024*1024, cfg.MaxUploadBytes)
	require.Equal(t, 40_000_000, cfg.MaxImagePixels)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("DEDUP_POLICY", "label")
	t.Setenv("DEFAULT_LOCALE", "en")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("MODEL_CONFIDENCE", "0.4")
	t.Setenv("MAX_IMAGE_PIXELS", "1000")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "", cfg.HTTPAddr)
	require.Equal(t, entity.DedupByLabel, cfg.DedupPolicy)
	require.Equal(t, 1000, cfg.MaxImagePixels)
	require.Equal(t, entity.LocaleEN, cfg.DefaultLocale)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.InDelta(t, 0.4, cfg.ModelConfidence, 1e-6)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("DEFAULT_LOCALE", "")

	t.Setenv("DEDUP_POLICY", "mean")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("DEDUP_POLICY", "")
	t.Setenv("DEFAULT_LOCALE", "fr")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_NothingToServe(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("DEDUP_POLICY", "")
	t.Setenv("DEFAULT_LOCALE", "")

	_, err := Load()
	require.Error(t, err)
}
