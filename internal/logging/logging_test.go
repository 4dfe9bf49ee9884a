package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "debug"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	Component(logger, "export").Debug("wrote mesh")
	assert.Contains(t, buf.String(), "component=export")
	assert.Contains(t, buf.String(), "wrote mesh")
}

func TestNewDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestNewBadLevel(t *testing.T) {
	_, closer, err := New(Options{Level: "loud"}, nil)
	assert.Error(t, err)
	assert.NotNil(t, closer)
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilegen.log")
	var buf bytes.Buffer
	logger, closer, err := New(Options{File: path, JSON: true}, &buf)
	require.NoError(t, err)

	logger.WithField("variant", "Tile_E").Info("generated")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"variant":"Tile_E"`)
	assert.Contains(t, buf.String(), `"msg":"generated"`)
}
