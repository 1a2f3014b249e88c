package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv("TW_DEBUG", "")
	assert.False(t, DebugEnabled(), "DebugEnabled() should return false when TW_DEBUG is empty")

	t.Setenv("TW_DEBUG", "1")
	assert.True(t, DebugEnabled(), "DebugEnabled() should return true when TW_DEBUG is set")

	t.Setenv("TW_DEBUG", "true")
	assert.True(t, DebugEnabled())
}

func TestNew_Levels(t *testing.T) {
	t.Setenv("TW_DEBUG", "")

	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Debug().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")

	buf.Reset()
	verbose := New(&buf, true)
	verbose.Debug().Str("path", "/tmp/x.json").Msg("loaded")
	assert.Contains(t, buf.String(), "loaded")
	assert.Contains(t, buf.String(), "/tmp/x.json")
}

func TestDebugf(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	var buf bytes.Buffer
	log.Logger = New(&buf, true)

	t.Setenv("TW_DEBUG", "")
	Debugf("This should not appear: %s", "test")
	assert.Empty(t, buf.String())

	t.Setenv("TW_DEBUG", "1")
	Debugf("This should appear: %s\n", "test")
	assert.Contains(t, buf.String(), "This should appear: test")
}

func TestSetup_InstallsGlobalLogger(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	var buf bytes.Buffer
	logger := Setup(&buf, false)
	logger.Warn().Msg("direct")
	log.Warn().Msg("global")

	assert.Contains(t, buf.String(), "direct")
	assert.Contains(t, buf.String(), "global")
}
