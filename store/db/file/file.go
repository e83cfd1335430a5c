// Package file implements the store driver over flat files: a comma-delimited
// record source with one check-in/check-out line per user per day, and an XML
// user roster.
package file

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/hrygo/presence-analyzer/internal/timeutil"
	apperrors "github.com/hrygo/presence-analyzer/internal/errors"
	"github.com/hrygo/presence-analyzer/store"
)

// Driver loads presence data from a CSV file and roster data from an XML file.
type Driver struct {
	presencePath string
	rosterPath   string
}

// NewDriver creates a file-backed store driver.
func NewDriver(presencePath, rosterPath string) *Driver {
	return &Driver{
		presencePath: presencePath,
		rosterPath:   rosterPath,
	}
}

// LoadPresence parses the record source into per-user calendars.
func (d *Driver) LoadPresence(ctx context.Context) (store.PresenceData, error) {
	f, err := os.Open(d.presencePath)
	if err != nil {
		return nil, apperrors.SourceUnavailable("cannot open presence source", err)
	}
	defer f.Close()

	return parsePresence(ctx, f)
}

// parsePresence reads comma-delimited presence lines. A data line has exactly
// 4 fields: user_id,YYYY-MM-DD,HH:MM:SS,HH:MM:SS. Lines with any other field
// count are header or footer rows and skipped silently. Lines whose fields
// fail type conversion are logged at debug level with their zero-based line
// index and skipped entirely, so a malformed line never contributes an entry.
func parsePresence(_ context.Context, r io.Reader) (store.PresenceData, error) {
	data := store.PresenceData{}

	scanner := bufio.NewScanner(r)
	for i := 0; scanner.Scan(); i++ {
		fields := strings.Split(scanner.Text(), ",")
		if len(fields) != 4 {
			continue
		}

		userID, date, entry, err := parseRecord(fields)
		if err != nil {
			slog.Debug("problem with presence line", "line", i, "error", err)
			continue
		}

		cal, ok := data[userID]
		if !ok {
			cal = store.UserCalendar{}
			data[userID] = cal
		}
		// Last write wins when a date repeats for the same user.
		cal[date] = entry
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.SourceUnavailable("reading presence source", err)
	}

	return data, nil
}

// parseRecord converts one 4-field line into its typed parts.
func parseRecord(fields []string) (int32, timeutil.Date, store.Entry, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 32)
	if err != nil {
		return 0, timeutil.Date{}, store.Entry{}, fmt.Errorf("user id: %w", err)
	}
	date, err := timeutil.ParseDate(fields[1])
	if err != nil {
		return 0, timeutil.Date{}, store.Entry{}, err
	}
	start, err := timeutil.ParseTimeOfDay(fields[2])
	if err != nil {
		return 0, timeutil.Date{}, store.Entry{}, err
	}
	end, err := timeutil.ParseTimeOfDay(fields[3])
	if err != nil {
		return 0, timeutil.Date{}, store.Entry{}, err
	}
	return int32(id), date, store.Entry{Start: start, End: end}, nil
}

// PresenceFingerprint identifies the current content of the record source.
func (d *Driver) PresenceFingerprint() (string, error) {
	return fingerprintFile("presence", d.presencePath)
}

// RosterFingerprint identifies the current content of the roster document.
func (d *Driver) RosterFingerprint() (string, error) {
	return fingerprintFile("roster", d.rosterPath)
}

// fingerprintFile derives a cache key from the file's identity and current
// stat: a changed size or mtime yields a new fingerprint, which invalidates
// any cached parse of the previous content.
func fingerprintFile(prefix, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", apperrors.SourceUnavailable("cannot stat "+prefix+" source", err)
	}

	key := fmt.Sprintf("%s|%s|%d|%d", prefix, path, info.Size(), info.ModTime().UnixNano())
	h := sha256.Sum256([]byte(key))
	return prefix + ":" + hex.EncodeToString(h[:])[:12], nil
}

var _ store.Driver = (*Driver)(nil)
