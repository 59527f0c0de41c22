package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenReadWriteCreateAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.db")

	db, err := Open(path, ModeReadWriteCreate)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db.DB))

	// Migrate is idempotent: a second run on the same store is a no-op.
	require.NoError(t, Migrate(db.DB))

	_, err = db.Exec(`INSERT INTO sales (model, variant, quantity, seller, notes) VALUES ('Fire', '24pin', 1, 'piers.rocks', '')`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM sales`))
	assert.Equal(t, 1, count)
}

func TestReadOnlyModeFailsClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.db")

	rw, err := Open(path, ModeReadWriteCreate)
	require.NoError(t, err)
	require.NoError(t, Migrate(rw.DB))
	_, err = rw.Exec(`INSERT INTO sales (model, variant, quantity, seller, notes) VALUES ('Ice', '28pin', 3, 'piers.rocks', '')`)
	require.NoError(t, err)
	require.NoError(t, rw.Close())

	ro, err := Open(path, ModeReadOnly)
	require.NoError(t, err)
	defer ro.Close()

	var total int
	require.NoError(t, ro.Get(&total, `SELECT COALESCE(SUM(quantity), 0) FROM sales`))
	assert.Equal(t, 3, total)

	_, err = ro.Exec(`INSERT INTO sales (model, variant, quantity) VALUES ('Fire', '24pin', 1)`)
	assert.Error(t, err, "insert must fail on a read-only handle")

	_, err = ro.Exec(`CREATE TABLE IF NOT EXISTS extra (id INTEGER PRIMARY KEY)`)
	assert.Error(t, err, "schema creation must fail on a read-only handle")
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("", ModeReadOnly)
	assert.Error(t, err)
}
