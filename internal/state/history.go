package state

import (
	"fmt"
	"time"
)

// maxHistory bounds the load_history table.
const maxHistory = 200

// LoadEntry is one successful load.
type LoadEntry struct {
	Ref      string
	Title    string
	Artist   string
	Format   string
	Duration time.Duration
	Size     int64
	LoadedAt time.Time
}

// RecordLoad appends e to the load history and trims old entries.
func (m *Manager) RecordLoad(e LoadEntry) error {
	if e.LoadedAt.IsZero() {
		e.LoadedAt = time.Now()
	}

	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO load_history (ref, title, artist, format, duration_ms, size, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.Ref, e.Title, e.Artist, e.Format, e.Duration.Milliseconds(), e.Size, e.LoadedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	_, err = tx.Exec(`
		DELETE FROM load_history WHERE id NOT IN (
			SELECT id FROM load_history ORDER BY loaded_at DESC, id DESC LIMIT ?
		)
	`, maxHistory)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}

	return tx.Commit()
}

// History returns up to limit entries, most recent first.
func (m *Manager) History(limit int) ([]LoadEntry, error) {
	if limit <= 0 {
		limit = maxHistory
	}

	rows, err := m.db.Query(`
		SELECT ref, title, artist, format, duration_ms, size, loaded_at
		FROM load_history
		ORDER BY loaded_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LoadEntry
	for rows.Next() {
		var e LoadEntry
		var durationMs, loadedAt int64
		if err := rows.Scan(&e.Ref, &e.Title, &e.Artist, &e.Format, &durationMs, &e.Size, &loadedAt); err != nil {
			return nil, err
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.LoadedAt = time.UnixMilli(loadedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
