package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  zapcore.Level
	}{
		{"production info", "production", "info", zapcore.InfoLevel},
		{"development debug", "development", "debug", zapcore.DebugLevel},
		{"unknown level", "development", "verbose", zapcore.InfoLevel},
		{"empty level", "production", "", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.env, tt.level)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.want))
			assert.False(t, log.Core().Enabled(tt.want-1))
		})
	}
}

func TestNewNop(t *testing.T) {
	assert.False(t, NewNop().Core().Enabled(zapcore.ErrorLevel))
}

func TestProperty_LogsAreStructured(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every entry is JSON with level and message", prop.ForAll(
		func(message, salePriceID string) bool {
			var buf bytes.Buffer

			encoderConfig := zap.NewProductionEncoderConfig()
			core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(&buf), zapcore.DebugLevel)
			log := zap.New(core)

			log.Info(message, zap.String("sale_price_id", salePriceID))
			_ = log.Sync()

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				return false
			}
			return entry["level"] == "info" && entry["msg"] == message && entry["sale_price_id"] == salePriceID
		},
		gen.AnyString(),
		gen.Identifier(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
