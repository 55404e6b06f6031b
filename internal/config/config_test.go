package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults to the local backend", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")
		t.Setenv("IDENTITY_BACKEND", "")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, BackendLocal, cfg.GetIdentityBackend())
		assert.Equal(t, ":8080", cfg.GetServerAddr())
		assert.Equal(t, "data", cfg.GetDataDir())
		assert.False(t, cfg.TracingEnabled)
	})

	t.Run("requires a session secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "SESSION_SECRET")
	})

	t.Run("firebase backend needs an api key", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")
		t.Setenv("IDENTITY_BACKEND", BackendFirebase)
		t.Setenv("FIREBASE_API_KEY", "")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "FIREBASE_API_KEY")

		t.Setenv("FIREBASE_API_KEY", "key")
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "key", cfg.GetFirebaseAPIKey())
	})

	t.Run("rejects unknown backends", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")
		t.Setenv("IDENTITY_BACKEND", "ldap")

		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("parses tracing flag", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")
		t.Setenv("IDENTITY_BACKEND", "")
		t.Setenv("PUBSUB_TRACING_ENABLED", "true")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.TracingEnabled)
	})
}
