package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/showcase/internal/logtail"
)

func TestNew_WritesJSONReadableByLogtail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "showcase.log")
	logger, closeLog, err := New(Options{Path: path, Level: "debug"})
	require.NoError(t, err)

	logger.WithFields(logrus.Fields{"component": "catalog", "item": "a"}).Info("item created")
	logger.Debug("debug line")
	require.NoError(t, closeLog())

	entries, err := logtail.ReadEntries(path, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "item created", entries[0].Message)
	assert.Equal(t, "catalog", entries[0].Fields["component"])
	assert.False(t, entries[0].Time.IsZero())
	assert.Equal(t, "DEBUG", entries[1].Level)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showcase.log")
	logger, closeLog, err := New(Options{Path: path, Level: "warn"})
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNew_EmptyPathDiscards(t *testing.T) {
	logger, closeLog, err := New(Options{})
	require.NoError(t, err)
	logger.Info("nowhere")
	assert.NoError(t, closeLog())
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(" Debug ")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)

	_, err = ParseLevel("loud")
	assert.ErrorContains(t, err, "log_level")
}
