package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 400, cfg.ReviewsPerBank)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "et", cfg.Country)
	assert.Equal(t, 32, cfg.SentimentBatch)
	assert.Equal(t, DefaultBankApps, cfg.BankApps)
	assert.Equal(t, []string{"BOA", "CBE", "Dashen"}, cfg.Banks())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "REVIEWS_PER_BANK=50\nBANK_APPS=CBE=com.example.cbe,Awash=com.example.awash\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("REVIEWS_PER_BANK")
		os.Unsetenv("BANK_APPS")
	})

	cfg, err := Load(envPath)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.ReviewsPerBank)
	assert.Equal(t, map[string]string{
		"CBE":   "com.example.cbe",
		"Awash": "com.example.awash",
	}, cfg.BankApps)
}

func TestParseBankAppsInvalid(t *testing.T) {
	_, err := parseBankApps("CBE")
	assert.Error(t, err)

	_, err = parseBankApps("=com.example")
	assert.Error(t, err)
}

func TestLoadMissingEnvFileIsFine(t *testing.T) {
	cfg, err := Load("does/not/exist/.env")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}
