package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutEnv(t *testing.T) {
	t.Setenv("STORE_ID", "")
	t.Setenv("STORE_WORKSHEET", "")
	t.Setenv("EMAILJS_SERVICE_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4242", cfg.HTTPPort)
	assert.Equal(t, BackendSheets, cfg.StoreBackend)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.False(t, cfg.StoreConfigured())
	assert.False(t, cfg.EmailConfigured())
}

func TestEmailConfiguredNeedsAllThree(t *testing.T) {
	cfg := &Config{EmailServiceID: "svc", EmailTemplateID: "tpl"}
	assert.False(t, cfg.EmailConfigured())
	cfg.EmailPublicKey = "pub"
	assert.True(t, cfg.EmailConfigured())
}

func TestStoreConfiguredIgnoresBlank(t *testing.T) {
	cfg := &Config{StoreID: "abc", StoreWorksheet: "   "}
	assert.False(t, cfg.StoreConfigured())
	cfg.StoreWorksheet = "Projects"
	assert.True(t, cfg.StoreConfigured())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "atlas", DBPort: 5433}
	assert.Equal(t, "host=db user=u password=p dbname=atlas port=5433 sslmode=disable", cfg.DSN())
	assert.True(t, cfg.AuditConfigured())
}
