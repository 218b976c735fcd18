package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivar-dev/cultivar/internal/config"
)

func TestNewInteractiveAPIClient_Logging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.API.BaseURL = server.URL
	cfg.API.AuthCookie = "session=abc"
	cfg.Cache.Enabled = false
	config.SetGlobalConfig(cfg)
	t.Cleanup(config.ResetGlobalConfigForTest)

	savedLogger, savedToFile := logger, loggingToFile
	t.Cleanup(func() { logger, loggingToFile = savedLogger, savedToFile })

	tests := []struct {
		name      string
		toFile    bool
		wantLines bool
	}{
		{name: "terminal logging is silenced", toFile: false, wantLines: false},
		{name: "file logging is kept", toFile: true, wantLines: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
			loggingToFile = tt.toFile

			client, err := newInteractiveAPIClient()
			require.NoError(t, err)
			_, err = client.ListPlants(context.Background(), "")
			require.NoError(t, err)

			if tt.wantLines {
				assert.Contains(t, buf.String(), `"message":"request"`)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestNewAPIClient_LogsToCLILogger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.API.BaseURL = server.URL
	cfg.API.AuthCookie = "session=abc"
	cfg.Cache.Enabled = false
	config.SetGlobalConfig(cfg)
	t.Cleanup(config.ResetGlobalConfigForTest)

	savedLogger, savedToFile := logger, loggingToFile
	t.Cleanup(func() { logger, loggingToFile = savedLogger, savedToFile })

	var buf bytes.Buffer
	logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	loggingToFile = false

	client, err := newAPIClient()
	require.NoError(t, err)
	_, err = client.ListUsers(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"request"`)
}
