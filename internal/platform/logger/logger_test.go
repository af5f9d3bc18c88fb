package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"account_backend/internal/platform/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.LoggerConfig
		wantErr bool
		debugOn bool
	}{
		{"json info", config.LoggerConfig{Level: "info", Encoding: "json"}, false, false},
		{"console debug", config.LoggerConfig{Level: "DEBUG", Encoding: "console"}, false, true},
		{"invalid level", config.LoggerConfig{Level: "loud", Encoding: "json"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.debugOn, l.Core().Enabled(zapcore.DebugLevel))
		})
	}
}
