package store

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hrygo/presence-analyzer/internal/profile"
	apperrors "github.com/hrygo/presence-analyzer/internal/errors"
	"github.com/hrygo/presence-analyzer/store/cache"
)

// Store provides access to parsed presence and roster data. Parsed documents
// are memoized keyed by a fingerprint of the source, so an unchanged source
// is parsed at most once per cache window; a changed source yields a new
// fingerprint and a reparse.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Cache settings
	cacheConfig cache.Config

	// Caches
	presenceCache *cache.Cache // cache for parsed presence data
	rosterCache   *cache.Cache // cache for the parsed roster

	// group collapses concurrent reparses of the same fingerprint.
	group singleflight.Group
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      profile.CacheTTL,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        16,
	}
	if cacheConfig.DefaultTTL <= 0 {
		cacheConfig.DefaultTTL = 10 * time.Minute
	}

	return &Store{
		driver:        driver,
		profile:       profile,
		cacheConfig:   cacheConfig,
		presenceCache: cache.New(cacheConfig),
		rosterCache:   cache.New(cacheConfig),
	}
}

// GetDriver returns the underlying driver.
func (s *Store) GetDriver() Driver {
	return s.driver
}

// Close releases the store's caches.
func (s *Store) Close() error {
	if err := s.presenceCache.Close(); err != nil {
		return err
	}
	return s.rosterCache.Close()
}

// GetPresence returns the parsed presence data, from cache when the source
// fingerprint still matches.
func (s *Store) GetPresence(ctx context.Context) (PresenceData, error) {
	fp, err := s.driver.PresenceFingerprint()
	if err != nil {
		return nil, err
	}
	if v, ok := s.presenceCache.Get(ctx, fp); ok {
		return v.(PresenceData), nil
	}

	v, err, _ := s.group.Do(fp, func() (any, error) {
		data, err := s.driver.LoadPresence(ctx)
		if err != nil {
			return nil, err
		}
		// Entries for older fingerprints are dead weight; drop them.
		s.presenceCache.Clear(ctx)
		s.presenceCache.Set(ctx, fp, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(PresenceData), nil
}

// GetUserCalendar returns one user's calendar or an UNKNOWN_USER error when
// the id is absent from the presence data.
func (s *Store) GetUserCalendar(ctx context.Context, userID int32) (UserCalendar, error) {
	data, err := s.GetPresence(ctx)
	if err != nil {
		return nil, err
	}
	cal, ok := data[userID]
	if !ok {
		return nil, apperrors.UnknownUser(userID)
	}
	return cal, nil
}

// ListUserIDs returns every user id present in the record source, ascending.
func (s *Store) ListUserIDs(ctx context.Context) ([]int32, error) {
	data, err := s.GetPresence(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int32, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// GetRoster returns the parsed roster, from cache when the document
// fingerprint still matches.
func (s *Store) GetRoster(ctx context.Context) (Roster, error) {
	fp, err := s.driver.RosterFingerprint()
	if err != nil {
		return nil, err
	}
	if v, ok := s.rosterCache.Get(ctx, fp); ok {
		return v.(Roster), nil
	}

	v, err, _ := s.group.Do(fp, func() (any, error) {
		roster, err := s.driver.LoadRoster(ctx)
		if err != nil {
			return nil, err
		}
		s.rosterCache.Clear(ctx)
		s.rosterCache.Set(ctx, fp, roster)
		return roster, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Roster), nil
}

// GetRosterEntry returns one user's roster metadata or a ROSTER_MISMATCH
// error when the roster has no record for the id.
func (s *Store) GetRosterEntry(ctx context.Context, userID int32) (RosterEntry, error) {
	roster, err := s.GetRoster(ctx)
	if err != nil {
		return RosterEntry{}, err
	}
	entry, ok := roster[userID]
	if !ok {
		return RosterEntry{}, apperrors.RosterMismatch(userID)
	}
	return entry, nil
}

// InvalidatePresence drops any cached presence data.
func (s *Store) InvalidatePresence(ctx context.Context) {
	s.presenceCache.Clear(ctx)
}

// InvalidateRoster drops any cached roster, forcing a reparse on next access.
// The roster refresh job calls this after rewriting the document.
func (s *Store) InvalidateRoster(ctx context.Context) {
	s.rosterCache.Clear(ctx)
}
