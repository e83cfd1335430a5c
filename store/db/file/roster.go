package file

import (
	"context"
	"encoding/xml"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/hrygo/presence-analyzer/internal/errors"
	"github.com/hrygo/presence-analyzer/store"
)

// rosterDocument mirrors the roster XML layout:
//
//	<intranet>
//	  <users>
//	    <user id="141">
//	      <avatar>/api/images/users/141</avatar>
//	      <name>Adam P.</name>
//	    </user>
//	  </users>
//	</intranet>
type rosterDocument struct {
	Users []rosterUser `xml:"users>user"`
}

type rosterUser struct {
	ID     string `xml:"id,attr"`
	Name   string `xml:"name"`
	Avatar string `xml:"avatar"`
}

// LoadRoster parses the user roster document.
func (d *Driver) LoadRoster(ctx context.Context) (store.Roster, error) {
	f, err := os.Open(d.rosterPath)
	if err != nil {
		return nil, apperrors.SourceUnavailable("cannot open roster document", err)
	}
	defer f.Close()

	return parseRoster(ctx, f)
}

// parseRoster walks the user elements one by one. Each element contributes
// its own record, so a user missing a name or avatar stays a partial record
// for that user only and cannot shift the extraction for later users. A user
// element without a usable id attribute is skipped.
func parseRoster(_ context.Context, r io.Reader) (store.Roster, error) {
	var doc rosterDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSourceUnavailable, "decoding roster document")
	}

	roster := store.Roster{}
	for _, u := range doc.Users {
		id, err := strconv.ParseInt(strings.TrimSpace(u.ID), 10, 32)
		if err != nil {
			slog.Debug("skipping roster user with invalid id", "id", u.ID, "error", err)
			continue
		}
		roster[int32(id)] = store.RosterEntry{
			UserID:    int32(id),
			Name:      strings.TrimSpace(u.Name),
			AvatarURL: strings.TrimSpace(u.Avatar),
		}
	}

	return roster, nil
}
