package game

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	_, err := NewLogger("loud")
	assert.ErrorContains(t, err, "parse log level")

	path := filepath.Join(t.TempDir(), "keepalive.log")
	log, err := NewLogger("debug", path)
	require.NoError(t, err)
	log.Debug("round started")
	require.NoError(t, log.Sync())
	assert.FileExists(t, path)
}
