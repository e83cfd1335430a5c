package profile

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory holding the source documents
	Data string
	// Version is the current version of server
	Version string

	// PresenceCSV is the path of the check-in/check-out record source.
	// Defaults to <Data>/presence.csv.
	PresenceCSV string
	// RosterXML is the path of the user roster document.
	// Defaults to <Data>/users.xml.
	RosterXML string

	// RosterURL is the endpoint the refresh job downloads the roster from.
	// When empty the refresh job is disabled.
	RosterURL string
	// RosterCron is the cron spec for the roster refresh job.
	RosterCron string
	// RosterClientID / RosterClientSecret / RosterTokenURL configure an
	// optional OAuth2 client-credentials token source for the roster fetch.
	RosterClientID     string
	RosterClientSecret string
	RosterTokenURL     string

	// CacheTTL bounds how long parsed source documents are memoized.
	CacheTTL time.Duration
}

// IsDev returns true unless the profile runs in prod mode.
func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// RosterRefreshEnabled reports whether the roster refresh job should run.
func (p *Profile) RosterRefreshEnabled() bool {
	return p.RosterURL != ""
}

// FromEnv fills the profile from PRESENCE_* environment variables for any
// field not already set by flags.
func (p *Profile) FromEnv() {
	v := viper.New()
	v.SetEnvPrefix("presence")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	setIfEmpty(&p.Mode, v.GetString("mode"))
	setIfEmpty(&p.Addr, v.GetString("addr"))
	if p.Port == 0 {
		p.Port = v.GetInt("port")
	}
	setIfEmpty(&p.Data, v.GetString("data"))
	setIfEmpty(&p.PresenceCSV, v.GetString("csv"))
	setIfEmpty(&p.RosterXML, v.GetString("roster-xml"))
	setIfEmpty(&p.RosterURL, v.GetString("roster-url"))
	setIfEmpty(&p.RosterCron, v.GetString("roster-cron"))
	setIfEmpty(&p.RosterClientID, v.GetString("roster-client-id"))
	setIfEmpty(&p.RosterClientSecret, v.GetString("roster-client-secret"))
	setIfEmpty(&p.RosterTokenURL, v.GetString("roster-token-url"))
	if p.CacheTTL == 0 {
		p.CacheTTL = v.GetDuration("cache-ttl")
	}
}

func setIfEmpty(dst *string, val string) {
	if *dst == "" {
		*dst = val
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

// Validate normalizes the profile and fills derived defaults.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Addr == "" {
		p.Addr = "127.0.0.1"
	}
	if p.Port == 0 {
		p.Port = 8081
	}
	if p.Data == "" {
		p.Data = "data"
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.PresenceCSV == "" {
		p.PresenceCSV = filepath.Join(dataDir, "presence.csv")
	}
	if p.RosterXML == "" {
		p.RosterXML = filepath.Join(dataDir, "users.xml")
	}
	if p.RosterCron == "" {
		p.RosterCron = "0 3 * * *"
	}
	if p.CacheTTL <= 0 {
		p.CacheTTL = 10 * time.Minute
	}

	return nil
}
