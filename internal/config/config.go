// Package config provides functionality for loading configuration options
// for the application from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Default values applied when the corresponding environment variable is unset.
const (
	// DefaultAddress is the default listening address.
	DefaultAddress = "localhost:8080"

	// DefaultRemoteUserHeader is the header the trusted upstream proxy
	// sets to the authenticated login.
	DefaultRemoteUserHeader = "Remote-User"

	// DefaultDebugUser is the fallback login substituted when running in
	// debug mode without an asserted identity.
	DefaultDebugUser = "debuguser"

	// DefaultTimesheetJournalID is the analytic journal time entries are
	// booked into when no journal is configured.
	DefaultTimesheetJournalID = 1

	// DefaultIdentityCacheTTL bounds how long a resolved identity is
	// reused before being re-resolved against the ERP.
	DefaultIdentityCacheTTL = 5 * time.Minute
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string

	// ERPURL is the base URL of the ERP backend.
	ERPURL string

	// ERPDatabase is the name of the ERP database to authenticate against.
	ERPDatabase string

	// ERPAdminLogin is the privileged login used for identity resolution.
	ERPAdminLogin string

	// ERPAdminPassword is the password for ERPAdminLogin.
	ERPAdminPassword string

	// Debug selects the fixed-test identity source instead of the
	// trusted-header source. Must be off in production.
	Debug bool

	// DebugUser is the login substituted by the fixed identity source.
	DebugUser string

	// RemoteUserHeader names the header carrying the asserted login.
	RemoteUserHeader string

	// AllowEmptyDescription accepts submissions with an empty (but
	// present) description, matching legacy behavior.
	AllowEmptyDescription bool

	// TimesheetJournalID is the analytic journal id for created entries.
	TimesheetJournalID int64

	// IdentityCacheTTL is the lifetime of cached identities.
	IdentityCacheTTL time.Duration
}

// Load reads configuration from SENDTIME_-prefixed environment variables,
// applies defaults, and validates that the ERP connection settings required
// at startup are present.
func Load() (*Options, error) {
	v := viper.New()
	v.SetEnvPrefix("SENDTIME")
	v.AutomaticEnv()

	v.SetDefault("address", DefaultAddress)
	v.SetDefault("remote_user_header", DefaultRemoteUserHeader)
	v.SetDefault("debug_user", DefaultDebugUser)
	v.SetDefault("allow_empty_description", true)
	v.SetDefault("timesheet_journal_id", DefaultTimesheetJournalID)
	v.SetDefault("identity_cache_ttl", DefaultIdentityCacheTTL)

	opts := &Options{
		Address:               v.GetString("address"),
		ERPURL:                v.GetString("erp_url"),
		ERPDatabase:           v.GetString("erp_database"),
		ERPAdminLogin:         v.GetString("erp_admin_login"),
		ERPAdminPassword:      v.GetString("erp_admin_password"),
		Debug:                 v.GetBool("debug"),
		DebugUser:             v.GetString("debug_user"),
		RemoteUserHeader:      v.GetString("remote_user_header"),
		AllowEmptyDescription: v.GetBool("allow_empty_description"),
		TimesheetJournalID:    v.GetInt64("timesheet_journal_id"),
		IdentityCacheTTL:      v.GetDuration("identity_cache_ttl"),
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// validate checks that settings without a usable default are present.
func (o *Options) validate() error {
	switch {
	case o.ERPURL == "":
		return fmt.Errorf("config: SENDTIME_ERP_URL is required")
	case o.ERPDatabase == "":
		return fmt.Errorf("config: SENDTIME_ERP_DATABASE is required")
	case o.ERPAdminLogin == "":
		return fmt.Errorf("config: SENDTIME_ERP_ADMIN_LOGIN is required")
	case o.ERPAdminPassword == "":
		return fmt.Errorf("config: SENDTIME_ERP_ADMIN_PASSWORD is required")
	}
	return nil
}
