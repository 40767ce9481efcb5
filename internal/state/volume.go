package state

import (
	"database/sql"
	"errors"
	"time"
)

// VolumeState represents the saved volume state.
type VolumeState struct {
	Volume float64
	Muted  bool
}

// GetVolume returns the saved volume state, or full volume unmuted when
// nothing was saved.
func (m *Manager) GetVolume() (*VolumeState, error) {
	m.saveMu.Lock()
	pending := m.pending
	m.saveMu.Unlock()
	if pending != nil {
		v := *pending
		return &v, nil
	}
	return getVolume(m.db)
}

// SaveVolume schedules the volume state to be persisted. Rapid successive
// calls (held volume keys) collapse into one write; Flush and Close write
// it immediately.
func (m *Manager) SaveVolume(volume float64, muted bool) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &VolumeState{Volume: volume, Muted: muted}

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveVolume(m.db, *pending)
		}
	})
}

// Flush writes a pending volume save now.
func (m *Manager) Flush() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending == nil {
		return nil
	}
	return saveVolume(m.db, *pending)
}

func getVolume(db *sql.DB) (*VolumeState, error) {
	var volume float64
	var muted bool

	row := db.QueryRow(`SELECT volume, muted FROM volume_state WHERE id = 1`)
	err := row.Scan(&volume, &muted)
	if errors.Is(err, sql.ErrNoRows) {
		return &VolumeState{Volume: 1.0, Muted: false}, nil
	}
	if err != nil {
		return nil, err
	}

	return &VolumeState{Volume: volume, Muted: muted}, nil
}

func saveVolume(db *sql.DB, v VolumeState) error {
	_, err := db.Exec(`
		INSERT INTO volume_state (id, volume, muted, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			muted = excluded.muted,
			updated_at = excluded.updated_at
	`, v.Volume, v.Muted, time.Now().Unix())
	return err
}
