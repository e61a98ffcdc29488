package storage

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("storage disabled")

// Config configures storage.
//
// Driver values:
//   - "file": dependency-free JSON Lines backend
//   - "sqlite": SQLite database file
//
// If Driver is empty or "none", storage is disabled.
type Config struct {
	Driver      string        `json:"driver,omitempty"`
	Path        string        `json:"path,omitempty"`
	BusyTimeout time.Duration `json:"-"` // sqlite only; 0 means default
}

// ShownRecord is one delivered notification.
// Keep it compact and schema-stable.
type ShownRecord struct {
	At       time.Time `json:"at"`
	Word     string    `json:"word"`
	Title    string    `json:"title"`
	Body     string    `json:"body,omitempty"`
	Trigger  string    `json:"trigger"`
	Position int       `json:"position"`
}
