package pixelart

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/pixelart/grid"
)

func testDB(t *testing.T) *GridDB {
	t.Helper()
	db, err := NewGridDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGridDBSaveLoad(t *testing.T) {
	db := testDB(t)

	g, err := grid.New(32)
	require.NoError(t, err)
	g.Set(0, 0, grid.RGB(0xff, 0, 0))
	g.Set(1, 0, grid.RGB(0, 0xff, 0))

	require.NoError(t, db.SaveGrid("mascot", g))

	loaded, err := db.LoadGrid("mascot")
	require.NoError(t, err)
	assert.True(t, loaded.Equal(g))
}

func TestGridDBOverwrite(t *testing.T) {
	db := testDB(t)

	g, err := grid.New(32)
	require.NoError(t, err)
	require.NoError(t, db.SaveGrid("mascot", g))

	g2, err := grid.New(64)
	require.NoError(t, err)
	g2.Set(5, 5, grid.RGB(0, 0, 0xff))
	require.NoError(t, db.SaveGrid("mascot", g2))

	loaded, err := db.LoadGrid("mascot")
	require.NoError(t, err)
	assert.True(t, loaded.Equal(g2))

	infos, err := db.ListGrids()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 64, infos[0].Resolution)
}

func TestGridDBList(t *testing.T) {
	db := testDB(t)

	g, err := grid.New(32)
	require.NoError(t, err)
	require.NoError(t, db.SaveGrid("b", g))
	require.NoError(t, db.SaveGrid("a", g))

	infos, err := db.ListGrids()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, "b", infos[1].Name)
	assert.NotEmpty(t, infos[0].SHA1)
}

func TestGridDBMissing(t *testing.T) {
	db := testDB(t)

	_, err := db.LoadGrid("nope")
	assert.Error(t, err)

	assert.Error(t, db.DeleteGrid("nope"))
}

func TestGridDBDelete(t *testing.T) {
	db := testDB(t)

	g, err := grid.New(32)
	require.NoError(t, err)
	require.NoError(t, db.SaveGrid("mascot", g))
	require.NoError(t, db.DeleteGrid("mascot"))

	_, err = db.LoadGrid("mascot")
	assert.Error(t, err)
}
