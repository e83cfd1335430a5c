// Package roster implements the periodic roster refresh job: it downloads
// the user roster document from the intranet endpoint, rewrites the local
// copy atomically and invalidates the store's cached roster.
package roster

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/hrygo/presence-analyzer/internal/profile"
	"github.com/hrygo/presence-analyzer/store"
)

// Runner downloads the roster document on a cron schedule.
type Runner struct {
	profile *profile.Profile
	store   *store.Store
	client  *http.Client
	cron    *cron.Cron
}

// NewRunner creates a roster refresh runner. When the profile carries OAuth2
// client credentials, downloads authenticate with a client-credentials token
// source; otherwise the endpoint is fetched directly.
func NewRunner(p *profile.Profile, st *store.Store) *Runner {
	client := &http.Client{Timeout: 30 * time.Second}
	if p.RosterClientID != "" && p.RosterTokenURL != "" {
		cfg := clientcredentials.Config{
			ClientID:     p.RosterClientID,
			ClientSecret: p.RosterClientSecret,
			TokenURL:     p.RosterTokenURL,
		}
		client = cfg.Client(context.Background())
		client.Timeout = 30 * time.Second
	}

	return &Runner{
		profile: p,
		store:   st,
		client:  client,
	}
}

// Run schedules the refresh job and blocks until the context is canceled.
func (r *Runner) Run(ctx context.Context) error {
	if !r.profile.RosterRefreshEnabled() {
		slog.Info("roster refresh disabled, no roster url configured")
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(r.profile.RosterCron, func() {
		if err := r.RunOnce(ctx); err != nil {
			// A failed refresh keeps the previous document; the next
			// tick retries.
			slog.Error("roster refresh failed", "error", err)
		}
	})
	if err != nil {
		return errors.Wrapf(err, "invalid roster cron spec %q", r.profile.RosterCron)
	}

	r.cron = c
	c.Start()
	slog.Info("roster refresh scheduled",
		"cron", r.profile.RosterCron,
		"url", r.profile.RosterURL,
	)

	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	slog.Info("roster refresh runner stopped")
	return nil
}

// RunOnce performs a single download-and-replace cycle (also used for manual
// trigger and for one-shot invocation at startup).
func (r *Runner) RunOnce(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.profile.RosterURL, nil)
	if err != nil {
		return errors.Wrap(err, "building roster request")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "fetching roster document")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("fetching roster document: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading roster response")
	}

	if err := writeAtomic(r.profile.RosterXML, body); err != nil {
		return err
	}

	r.store.InvalidateRoster(ctx)
	slog.Info("roster document refreshed", "path", r.profile.RosterXML, "bytes", len(body))
	return nil
}

// writeAtomic replaces path with data via a temp file and rename, so readers
// never observe a partially written document.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".roster-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating roster temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing roster temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing roster temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "replacing roster document")
	}
	return nil
}
