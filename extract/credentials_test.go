package extract_test

import (
	"testing"

	"github.com/fwojciec/pageflat"
	"github.com/fwojciec/pageflat/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCredentials(t *testing.T) {
	t.Parallel()

	emptyEnv := func(string) string { return "" }

	t.Run("explicit parameters win over environment", func(t *testing.T) {
		t.Parallel()

		env := map[string]string{
			extract.EnvEmail:    "env@example.com",
			extract.EnvAPIToken: "env-token",
		}

		creds, err := extract.ResolveCredentials("param@example.com", "param-token", func(k string) string { return env[k] })
		require.NoError(t, err)
		assert.Equal(t, "param@example.com", creds.Email)
		assert.Equal(t, "param-token", creds.APIToken)
	})

	t.Run("falls back to environment values", func(t *testing.T) {
		t.Parallel()

		env := map[string]string{
			extract.EnvEmail:    "env@example.com",
			extract.EnvAPIToken: "env-token",
		}

		creds, err := extract.ResolveCredentials("", "", func(k string) string { return env[k] })
		require.NoError(t, err)
		assert.Equal(t, "env@example.com", creds.Email)
		assert.Equal(t, "env-token", creds.APIToken)
	})

	t.Run("mixes explicit and environment sources", func(t *testing.T) {
		t.Parallel()

		env := map[string]string{extract.EnvAPIToken: "env-token"}

		creds, err := extract.ResolveCredentials("param@example.com", "", func(k string) string { return env[k] })
		require.NoError(t, err)
		assert.Equal(t, "param@example.com", creds.Email)
		assert.Equal(t, "env-token", creds.APIToken)
	})

	t.Run("names the missing email credential", func(t *testing.T) {
		t.Parallel()

		_, err := extract.ResolveCredentials("", "token", emptyEnv)
		require.Error(t, err)
		assert.Equal(t, pageflat.EINVALID, pageflat.ErrorCode(err))
		assert.Contains(t, pageflat.ErrorMessage(err), "CONFLUENCE_EMAIL")
	})

	t.Run("names the missing token credential", func(t *testing.T) {
		t.Parallel()

		_, err := extract.ResolveCredentials("user@example.com", "", emptyEnv)
		require.Error(t, err)
		assert.Equal(t, pageflat.EINVALID, pageflat.ErrorCode(err))
		assert.Contains(t, pageflat.ErrorMessage(err), "CONFLUENCE_API_TOKEN")
	})
}
