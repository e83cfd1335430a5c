package presence

import (
	"context"
	"strconv"

	"github.com/hrygo/presence-analyzer/internal/timeutil"
	apperrors "github.com/hrygo/presence-analyzer/internal/errors"
	"github.com/hrygo/presence-analyzer/store"
)

// Service computes presence aggregates for single users and serializes them
// into the row shapes the API layer returns. It owns no state beyond the
// store reference; every method re-reads (or cache-hits) the record source.
type Service struct {
	Store *store.Store
}

// NewService creates a presence aggregation service on top of the store.
func NewService(st *store.Store) *Service {
	return &Service{Store: st}
}

// Row is one [label, value] pair of a weekday or month view.
type Row = []any

// User is one entry of the user listing.
type User struct {
	UserID int32  `json:"user_id"`
	Name   string `json:"name"`
}

// StartEndTimes is the serialized mean start/end pair for one weekday.
type StartEndTimes struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ListUsers returns every user found in the record source with a display name
// from the roster, falling back to "User <id>" on a roster miss.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	ids, err := s.Store.ListUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	roster, err := s.Store.GetRoster(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]User, 0, len(ids))
	for _, id := range ids {
		name := "User " + strconv.Itoa(int(id))
		if entry, ok := roster[id]; ok && entry.Name != "" {
			name = entry.Name
		}
		users = append(users, User{UserID: id, Name: name})
	}
	return users, nil
}

// MeanTimeWeekday returns [label, mean interval seconds] rows for all 7
// weekdays of one user's calendar.
func (s *Service) MeanTimeWeekday(ctx context.Context, userID int32) ([]Row, error) {
	cal, err := s.Store.GetUserCalendar(ctx, userID)
	if err != nil {
		return nil, err
	}

	buckets := GroupByWeekday(cal)
	rows := make([]Row, 0, len(buckets))
	for i, intervals := range buckets {
		rows = append(rows, Row{WeekdayLabels[i], timeutil.Mean(intervals)})
	}
	return rows, nil
}

// PresenceWeekday returns total presence seconds per weekday, prefixed with a
// ["Weekday", "Presence (s)"] header row.
func (s *Service) PresenceWeekday(ctx context.Context, userID int32) ([]Row, error) {
	cal, err := s.Store.GetUserCalendar(ctx, userID)
	if err != nil {
		return nil, err
	}

	buckets := GroupByWeekday(cal)
	rows := make([]Row, 0, len(buckets)+1)
	rows = append(rows, Row{"Weekday", "Presence (s)"})
	for i, intervals := range buckets {
		rows = append(rows, Row{WeekdayLabels[i], sum(intervals)})
	}
	return rows, nil
}

// PresenceStartEnd returns the mean start and end time per weekday, formatted
// as HH:MM:SS strings keyed by weekday label.
func (s *Service) PresenceStartEnd(ctx context.Context, userID int32) (map[string]StartEndTimes, error) {
	cal, err := s.Store.GetUserCalendar(ctx, userID)
	if err != nil {
		return nil, err
	}

	means := GroupMeanStartEndByWeekday(cal)
	result := make(map[string]StartEndTimes, len(means))
	for label, m := range means {
		result[label] = StartEndTimes{Start: m.Start.String(), End: m.End.String()}
	}
	return result, nil
}

// MeanTimeMonth returns [label, mean interval seconds] rows for all 12
// months of one user's calendar.
func (s *Service) MeanTimeMonth(ctx context.Context, userID int32) ([]Row, error) {
	cal, err := s.Store.GetUserCalendar(ctx, userID)
	if err != nil {
		return nil, err
	}

	buckets := GroupIntervalsByMonth(cal)
	rows := make([]Row, 0, len(buckets))
	for i, intervals := range buckets {
		rows = append(rows, Row{MonthLabels[i], timeutil.Mean(intervals)})
	}
	return rows, nil
}

// AvatarURL returns the user's avatar URL from the roster. A missing roster
// record or an empty avatar is a ROSTER_MISMATCH.
func (s *Service) AvatarURL(ctx context.Context, userID int32) (string, error) {
	entry, err := s.Store.GetRosterEntry(ctx, userID)
	if err != nil {
		return "", err
	}
	if entry.AvatarURL == "" {
		return "", apperrors.RosterMismatch(userID)
	}
	return entry.AvatarURL, nil
}
