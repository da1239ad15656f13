package pixelart

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bodgit/pixelart/grid"
	"github.com/bodgit/pixelart/rle"
)

// GridDB is the on-disk library of saved canvases. Each canvas is
// stored as its JSON exchange record together with the SHA1 of that
// record for cheap change detection.
type GridDB struct {
	db *sql.DB
}

// NewGridDB opens or creates the library at file.
func NewGridDB(file string) (*GridDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS canvas (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, resolution INTEGER NOT NULL, record BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &GridDB{
		db: db,
	}, nil
}

// Close closes the library.
func (d *GridDB) Close() error {
	return d.db.Close()
}

// SaveGrid stores g under name, replacing any previous canvas saved
// with the same name.
func (d *GridDB) SaveGrid(name string, g *grid.Grid) error {
	var b bytes.Buffer
	if err := rle.Write(&b, g); err != nil {
		return err
	}

	sum := fmt.Sprintf("%x", sha1.Sum(b.Bytes()))

	_, err := d.db.Exec("INSERT INTO canvas (name, sha1, resolution, record) VALUES (?, ?, ?, ?) ON CONFLICT(name) DO UPDATE SET sha1 = excluded.sha1, resolution = excluded.resolution, record = excluded.record", name, sum, g.Resolution, b.Bytes())
	return err
}

// LoadGrid returns the canvas saved under name.
func (d *GridDB) LoadGrid(name string) (*grid.Grid, error) {
	var record []byte
	if err := d.db.QueryRow("SELECT record FROM canvas WHERE name = ?", name).Scan(&record); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no canvas named %q", name)
		}
		return nil, err
	}
	return rle.Read(bytes.NewReader(record))
}

// CanvasInfo describes one saved canvas.
type CanvasInfo struct {
	Name       string
	Resolution int
	SHA1       string
}

// ListGrids returns every saved canvas ordered by name.
func (d *GridDB) ListGrids() ([]CanvasInfo, error) {
	rows, err := d.db.Query("SELECT name, resolution, sha1 FROM canvas ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []CanvasInfo
	for rows.Next() {
		var info CanvasInfo
		if err := rows.Scan(&info.Name, &info.Resolution, &info.SHA1); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteGrid removes the canvas saved under name.
func (d *GridDB) DeleteGrid(name string) error {
	result, err := d.db.Exec("DELETE FROM canvas WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no canvas named %q", name)
	}
	return nil
}
