package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"24h"`, want: 24 * time.Hour},
		{name: "compound string", input: `"1h30m"`, want: 90 * time.Minute},
		{name: "number of nanoseconds", input: `1000000000`, want: time.Second},
		{name: "garbage string", input: `"soon"`, wantErr: true},
		{name: "wrong type", input: `["1h"]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDurationMarshalRoundTrip(t *testing.T) {
	d := Duration{90 * time.Minute}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1h30m0s"`, string(b))

	var back Duration
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)
}

func TestReadConfig(t *testing.T) {
	path := t.TempDir() + "/config.json"
	body := `{
		"mode": "production",
		"addr": ":8080",
		"domain": "example.com",
		"postgres": {
			"host": "localhost",
			"port": 5432,
			"user": "mines",
			"password": "from-file",
			"db_name": "mines"
		},
		"jwt": {
			"token_lifetime": "12h",
			"private_key_path": "jwt-private-key.pem",
			"public_key_path": "jwt-public-key.pem"
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Run("plain", func(t *testing.T) {
		var cfg Config
		require.NoError(t, ReadConfig(path, &cfg))
		assert.True(t, cfg.Production())
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "from-file", cfg.Postgres.Password)
		assert.Equal(t, 12*time.Hour, cfg.Jwt.TokenLifetime.Duration)
	})

	t.Run("env password override", func(t *testing.T) {
		t.Setenv("POSTGRES_PASSWORD", "from-env")
		var cfg Config
		require.NoError(t, ReadConfig(path, &cfg))
		assert.Equal(t, "from-env", cfg.Postgres.Password)
	})

	t.Run("missing file", func(t *testing.T) {
		var cfg Config
		assert.Error(t, ReadConfig(path+".nope", &cfg))
	})
}

func TestCookiesRefresh(t *testing.T) {
	cookies := &Cookies{
		Domain:   "example.com",
		SameSite: http.SameSiteStrictMode,
		jwt:      &JWT{tokenLifetime: time.Hour},
	}

	w := httptest.NewRecorder()
	require.NoError(t, cookies.Refresh(w, "header.payload.signature"))

	set := w.Result().Cookies()
	require.Len(t, set, 2)

	byName := map[string]*http.Cookie{}
	for _, c := range set {
		byName[c.Name] = c
	}

	auth, ok := byName["auth"]
	require.True(t, ok)
	assert.Equal(t, "header.payload", auth.Value)
	assert.False(t, auth.HttpOnly, "claims half stays readable by the client")

	sign, ok := byName["sign"]
	require.True(t, ok)
	assert.Equal(t, "signature", sign.Value)
	assert.True(t, sign.HttpOnly)

	// both halves expire together, one token lifetime from now
	for _, c := range []*http.Cookie{auth, sign} {
		assert.WithinDuration(t,
			time.Now().Add(cookies.jwt.TokenLifetime()), c.Expires, time.Minute)
	}
}

func TestCookiesRefreshRejectsMalformedToken(t *testing.T) {
	cookies := &Cookies{jwt: &JWT{tokenLifetime: time.Hour}}
	w := httptest.NewRecorder()
	assert.Error(t, cookies.Refresh(w, "not-a-jwt"))
	assert.Empty(t, w.Result().Cookies())
}
