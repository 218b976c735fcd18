package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cultivar-dev/cultivar/internal/config"
)

func TestRun(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Cleanup(config.ResetGlobalConfigForTest)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{name: "version", args: []string{"--version"}, wantCode: 0},
		{name: "unknown command", args: []string{"harvest"}, wantCode: 1, wantErr: "unknown command"},
		{name: "bad output", args: []string{"plants", "list", "--output", "xml"}, wantCode: 1, wantErr: "unsupported output format"},
		{name: "bad page", args: []string{"plants", "list", "--page", "0", "--no-tui"}, wantCode: 1, wantErr: "page must be >= 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stderr)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantErr != "" {
				assert.Contains(t, stderr.String(), "Error: ")
				assert.Contains(t, stderr.String(), tt.wantErr)
			}
		})
	}
}
