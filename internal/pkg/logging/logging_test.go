//go:build unit

package logging_test

import (
	"bytes"
	"testing"

	"resource-hub/internal/pkg/config"
	"resource-hub/internal/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)
	base := config.LogConfig{TimeZone: "UTC", TimeFormat: "2006-01-02"}

	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug enables everything", "debug", true, true},
		{"warn drops info", "warn", false, false},
		{"unknown level falls back to info", "loud", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Level = tt.level
			var buf bytes.Buffer
			logger := logging.New(cfg, &buf)

			logger.Debug("debug line")
			logger.Info("info line")

			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
			assert.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte("info line")))
		})
	}

	t.Run("time is rendered with the configured layout", func(t *testing.T) {
		var buf bytes.Buffer
		logging.New(base, &buf).Info("stamped")
		assert.Regexp(t, `time=\d{4}-\d{2}-\d{2} `, buf.String())
	})
}
