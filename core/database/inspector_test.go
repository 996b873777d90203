package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	// Setup In-Memory DB
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	// Create a test table
	// SQLite specific types: INTEGER, TEXT.
	err = db.Exec("CREATE TABLE test_runs (id INTEGER PRIMARY KEY, name TEXT, description TEXT)").Error
	assert.NoError(t, err)

	// Test GetTableColumns
	columns, err := GetTableColumns(db, "test_runs")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	// Map columns to map for easy assertion
	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "text", colMap["description"])

	// Test non-existent table
	cols, err := GetTableColumns(db, "non_existent")
	// PRAGMA table_info returns empty result for non-existent table in SQLite, implies no error but empty columns
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestVerifyColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE runs (id TEXT PRIMARY KEY, kind TEXT, margin REAL)").Error)

	assert.NoError(t, VerifyColumns(db, "runs", []string{"id", "Kind", "margin"}))

	err = VerifyColumns(db, "runs", []string{"id", "summary"})
	assert.ErrorContains(t, err, "missing columns: summary")

	err = VerifyColumns(db, "absent", []string{"id"})
	assert.ErrorContains(t, err, "does not exist")
}
