package logging

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { Setup("info", "text") })

	tests := []struct {
		level     string
		format    string
		wantLevel log.Level
		wantJSON  bool
	}{
		{"debug", "json", log.DebugLevel, true},
		{"warn", "text", log.WarnLevel, false},
		{"loud", "", log.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			Setup(tt.level, tt.format)
			assert.Equal(t, tt.wantLevel, log.GetLevel())

			_, isJSON := log.StandardLogger().Formatter.(*log.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}
