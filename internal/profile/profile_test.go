package profile

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	dir := t.TempDir()
	p := &Profile{Data: dir}

	require.NoError(t, p.Validate())

	assert.Equal(t, "demo", p.Mode)
	assert.Equal(t, "127.0.0.1", p.Addr)
	assert.Equal(t, 8081, p.Port)
	assert.Equal(t, filepath.Join(dir, "presence.csv"), p.PresenceCSV)
	assert.Equal(t, filepath.Join(dir, "users.xml"), p.RosterXML)
	assert.Equal(t, "0 3 * * *", p.RosterCron)
	assert.Equal(t, 10*time.Minute, p.CacheTTL)
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	dir := t.TempDir()
	p := &Profile{
		Mode:        "prod",
		Addr:        "0.0.0.0",
		Port:        9000,
		Data:        dir,
		PresenceCSV: "/srv/records.csv",
		RosterXML:   "/srv/users.xml",
		RosterCron:  "*/30 * * * *",
		CacheTTL:    time.Minute,
	}

	require.NoError(t, p.Validate())

	assert.Equal(t, "prod", p.Mode)
	assert.Equal(t, 9000, p.Port)
	assert.Equal(t, "/srv/records.csv", p.PresenceCSV)
	assert.Equal(t, "/srv/users.xml", p.RosterXML)
	assert.Equal(t, "*/30 * * * *", p.RosterCron)
	assert.Equal(t, time.Minute, p.CacheTTL)
}

func TestValidateMissingDataDir(t *testing.T) {
	p := &Profile{Data: filepath.Join(t.TempDir(), "does-not-exist")}
	assert.Error(t, p.Validate())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PRESENCE_MODE", "dev")
	t.Setenv("PRESENCE_CSV", "/tmp/p.csv")
	t.Setenv("PRESENCE_ROSTER_URL", "https://intranet.example.com/users.xml")
	t.Setenv("PRESENCE_CACHE_TTL", "30s")

	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, "dev", p.Mode)
	assert.Equal(t, "/tmp/p.csv", p.PresenceCSV)
	assert.Equal(t, "https://intranet.example.com/users.xml", p.RosterURL)
	assert.Equal(t, 30*time.Second, p.CacheTTL)
	assert.True(t, p.RosterRefreshEnabled())
}

func TestFromEnvDoesNotOverrideFlags(t *testing.T) {
	t.Setenv("PRESENCE_MODE", "dev")

	p := &Profile{Mode: "prod"}
	p.FromEnv()

	assert.Equal(t, "prod", p.Mode)
}

func TestIsDev(t *testing.T) {
	assert.True(t, (&Profile{Mode: "dev"}).IsDev())
	assert.True(t, (&Profile{Mode: "demo"}).IsDev())
	assert.False(t, (&Profile{Mode: "prod"}).IsDev())
}
