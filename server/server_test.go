package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/presence-analyzer/internal/profile"
	"github.com/hrygo/presence-analyzer/internal/timeutil"
	"github.com/hrygo/presence-analyzer/store"
)

type staticDriver struct {
	presence store.PresenceData
	roster   store.Roster
}

func (d *staticDriver) LoadPresence(context.Context) (store.PresenceData, error) {
	return d.presence, nil
}

func (d *staticDriver) LoadRoster(context.Context) (store.Roster, error) {
	return d.roster, nil
}

func (d *staticDriver) PresenceFingerprint() (string, error) { return "presence:test", nil }
func (d *staticDriver) RosterFingerprint() (string, error)   { return "roster:test", nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	driver := &staticDriver{
		presence: store.PresenceData{
			10: {
				timeutil.Date{Year: 2013, Month: 9, Day: 10}: store.Entry{
					Start: timeutil.TimeOfDay{Hour: 9},
					End:   timeutil.TimeOfDay{Hour: 17},
				},
			},
		},
		roster: store.Roster{},
	}
	p := &profile.Profile{Mode: "dev", Addr: "127.0.0.1", Port: 0, CacheTTL: time.Minute}
	st := store.New(driver, p)
	t.Cleanup(func() { _ = st.Close() })

	s, err := NewServer(context.Background(), p, st)
	require.NoError(t, err)
	return s
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Service ready.", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAPIRoutesRegistered(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/presence_weekday/10", nil)
	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDCarriedThrough(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "proxy-assigned-id")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	assert.Equal(t, "proxy-assigned-id", rec.Header().Get("X-Request-Id"))
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	s := newTestServer(t)

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		rec := httptest.NewRecorder()
		s.Echo().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.GreaterOrEqual(t, s.metrics.RequestTotal(), int64(3))
}

func TestFrontendRedirect(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/statistics/presence_weekday/", rec.Header().Get("Location"))
}
