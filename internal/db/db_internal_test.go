package db

import (
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	dialect, err := dialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, goose.DialectSQLite3, dialect)

	dialect, err = dialectFor("pgx")
	require.NoError(t, err)
	assert.Equal(t, goose.DialectPostgres, dialect)

	_, err = dialectFor("mysql")
	assert.ErrorContains(t, err, `unsupported database driver "mysql"`)
}

func TestSQLitePath(t *testing.T) {
	assert.Equal(t, "./data/taskflow.db", sqlitePath("./data/taskflow.db?_pragma=foreign_keys(1)"))
	assert.Equal(t, "file:x.db", sqlitePath("file:x.db"))
}
