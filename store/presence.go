package store

import (
	"github.com/hrygo/presence-analyzer/internal/timeutil"
)

// Entry is a single day's check-in/check-out pair.
type Entry struct {
	Start timeutil.TimeOfDay
	End   timeutil.TimeOfDay
}

// UserCalendar maps a calendar date to that day's presence entry. A user has
// at most one entry per date; the record parser applies last-write-wins for
// duplicate dates in the source.
type UserCalendar map[timeutil.Date]Entry

// PresenceData is the record parser's full output: one calendar per user id.
type PresenceData map[int32]UserCalendar

// RosterEntry is one user's display metadata from the roster document.
// Name and AvatarURL may be empty when the roster element is partial.
type RosterEntry struct {
	UserID    int32
	Name      string
	AvatarURL string
}

// Roster maps user ids to display metadata.
type Roster map[int32]RosterEntry
