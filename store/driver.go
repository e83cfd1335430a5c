package store

import (
	"context"
)

// Driver is an interface for loading the presence source documents.
type Driver interface {
	// LoadPresence parses the record source into per-user calendars.
	LoadPresence(ctx context.Context) (PresenceData, error)

	// LoadRoster parses the user roster document.
	LoadRoster(ctx context.Context) (Roster, error)

	// PresenceFingerprint identifies the current content of the record
	// source. The fingerprint changes whenever the source changes, so it
	// doubles as the cache key for parsed presence data.
	PresenceFingerprint() (string, error)

	// RosterFingerprint identifies the current content of the roster document.
	RosterFingerprint() (string, error)
}
