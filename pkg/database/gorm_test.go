package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestNewGormDBSQLiteAndMigrate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "data", "notes.db")

	db, err := NewGormDB(GormConfig{Driver: DriverSQLite, DSN: dsn, LogLevel: "silent"})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("notes"))
	for _, column := range []string{"id", "title", "content", "type", "file_path", "created_at", "updated_at"} {
		assert.True(t, db.Migrator().HasColumn("notes", column), column)
	}

	// Running twice is harmless
	require.NoError(t, Migrate(db))
}

func TestNewGormDBRejectsUnknownDriver(t *testing.T) {
	_, err := NewGormDB(GormConfig{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)

	_, err = NewGormDB(GormConfig{Driver: DriverPostgres})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Info, parseLogLevel("INFO"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
}
