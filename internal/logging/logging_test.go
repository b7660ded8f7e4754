package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevels(t *testing.T) {
	var buf bytes.Buffer

	dev := SetupWithWriter("development", &buf)
	assert.Equal(t, zerolog.DebugLevel, dev.GetLevel())

	prod := SetupWithWriter("production", &buf)
	assert.Equal(t, zerolog.InfoLevel, prod.GetLevel())

	prod.Debug().Msg("hidden")
	prod.Info().Str("component", "test").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
