package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetsLevelAndOutput(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New("debug", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("id", "fmt ").Debug("chunk")
	assert.Contains(t, buf.String(), `msg=chunk`)
	assert.Contains(t, buf.String(), `id="fmt "`)
	assert.NotContains(t, buf.String(), "time=")
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New("warning", &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", &bytes.Buffer{})
	require.Error(t, err)
}
