package state

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "wavelet"
	dbFileName   = "wavelet.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *VolumeState
}

// Open opens the state database under $XDG_DATA_HOME/wavelet.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenDB(dbPath)
}

// OpenDB opens the state database at path. ":memory:" gives a throwaway
// database.
func OpenDB(path string) (*Manager, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One connection: an in-memory database is per connection.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Manager{db: db}, nil
}

// Close flushes a pending volume save and closes the database.
func (m *Manager) Close() error {
	return errors.Join(m.Flush(), m.db.Close())
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
