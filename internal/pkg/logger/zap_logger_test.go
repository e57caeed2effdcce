package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.log")
	l := NewIsolatedLogger(path)

	l.Info("note", "note created", map[string]interface{}{"note_id": "abc"})
	l.Error("note", "insert failed", map[string]interface{}{"error": errors.New("disk full")})
	_ = l.Sync()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}

	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "note created", entries[0]["message"])
	assert.Equal(t, "note", entries[0]["module"])

	assert.Equal(t, "ERROR", entries[1]["level"])
	details := entries[1]["details"].(map[string]interface{})
	assert.Equal(t, "disk full", details["error"])
}

func TestNopLoggerAcceptsNilDetails(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.Debug("m", "debug", nil)
		l.Info("m", "info", nil)
		l.Warn("m", "warn", nil)
		l.Error("m", "error", nil)
	})
}
