package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/cachegen/internal/core/domain"
)

func TestLogLevel_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DEBUG", domain.LogLevelDebug.String())
	assert.Equal(t, "INFO", domain.LogLevelInfo.String())
	assert.Equal(t, "WARN", domain.LogLevelWarn.String())
	assert.Equal(t, "ERROR", domain.LogLevelError.String())
	assert.Equal(t, "INFO", domain.LogLevel(42).String())
}
