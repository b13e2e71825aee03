package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"sqlTemplate": map[string]any{
			"initSchema":   true,
			"maxOpenConns": 1,
		},
		"document": map[string]any{
			"keyPrefix": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SQLTEMPLATE_INITSCHEMA", want: "sqlTemplate.initSchema"},
		{envKey: "SQLTEMPLATE_MAXOPENCONNS", want: "sqlTemplate.maxOpenConns"},
		{envKey: "DOCUMENT_KEYPREFIX", want: "document.keyPrefix"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Run("empty backend falls back to sqltemplate", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, cfg.applyDefaults())
		assert.Equal(t, BackendSQLTemplate, cfg.Backend.Kind)
		assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	})

	t.Run("backend kind is normalized", func(t *testing.T) {
		cfg := &Config{}
		cfg.Backend.Kind = " Document "
		cfg.Document = &DocumentConfig{Addr: "localhost:6379"}
		require.NoError(t, cfg.applyDefaults())
		assert.Equal(t, BackendDocument, cfg.Backend.Kind)
		assert.Equal(t, defaultDocumentKeyPrefix, cfg.Document.KeyPrefix)
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		cfg := &Config{}
		cfg.Backend.Kind = "cassandra"
		assert.Error(t, cfg.applyDefaults())
	})
}
