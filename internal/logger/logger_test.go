package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"vitrine/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vitrine.log")
	log, err := logger.New("debug", file)
	require.NoError(t, err)
	log.Info("hello")
	_ = log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)

	_, err = logger.New("loud", "")
	assert.Error(t, err)
}
