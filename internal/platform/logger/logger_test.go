package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsoares/taskhub-api/internal/config"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "mixed case", logLevel: "INFO"},
		{name: "invalid level falls back to info", logLevel: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.Equal(t, logger, slog.Default())
		})
	}
}

func TestContextCarriage(t *testing.T) {
	t.Parallel()

	base := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithContext(context.Background(), base)
	assert.Equal(t, base, FromContext(ctx))
	assert.Equal(t, base, FromContextOrDefault(ctx, nil))

	// Without a logger in context the fallback wins, then the default.
	empty := context.Background()
	assert.Equal(t, base, FromContextOrDefault(empty, base))
	assert.Equal(t, slog.Default(), FromContext(empty))
}
