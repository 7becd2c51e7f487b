// Package events persists calendar events in SQLite, keyed by day.
package events

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Event is a single calendar entry. Date is "YYYY-MM-DD"; Time is an
// optional "HH:MM" and sorts empty entries first.
type Event struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time,omitempty"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Store handles SQLite operations for events.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL,
    time TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
`
	_, err := s.db.Exec(schema)
	return err
}

// Add inserts an event for date. The date must be "YYYY-MM-DD" and time,
// when given, "HH:MM".
func (s *Store) Add(date, eventTime, title string) (*Event, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if eventTime != "" {
		if _, err := time.Parse("15:04", eventTime); err != nil {
			return nil, fmt.Errorf("invalid time %q: %w", eventTime, err)
		}
	}
	if title == "" {
		return nil, fmt.Errorf("empty title")
	}

	id, err := generateID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	ev := &Event{
		ID:        id,
		Date:      date,
		Time:      eventTime,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.Exec(`
		INSERT INTO events (id, date, time, title, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, ev.ID, ev.Date, ev.Time, ev.Title, ev.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return ev, nil
}

// ForDate lists the events of one day, timed entries in time order after
// the untimed ones.
func (s *Store) ForDate(date string) ([]Event, error) {
	rows, err := s.db.Query(`
		SELECT id, date, time, title, created_at
		FROM events
		WHERE date = ?
		ORDER BY time, created_at
	`, date)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var created string
		if err := rows.Scan(&ev.ID, &ev.Date, &ev.Time, &ev.Title, &created); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			ev.CreatedAt = t
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Delete removes an event by id.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event not found: %s", id)
	}
	return nil
}

// generateID creates an event ID with "ev-" prefix and 8 hex chars.
func generateID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "ev-" + hex.EncodeToString(b), nil
}
