package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SENDTIME_ERP_URL", "http://erp.internal:8069")
	t.Setenv("SENDTIME_ERP_DATABASE", "production")
	t.Setenv("SENDTIME_ERP_ADMIN_LOGIN", "admin")
	t.Setenv("SENDTIME_ERP_ADMIN_PASSWORD", "adminpw")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	opts, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAddress, opts.Address)
	assert.Equal(t, DefaultRemoteUserHeader, opts.RemoteUserHeader)
	assert.Equal(t, DefaultDebugUser, opts.DebugUser)
	assert.False(t, opts.Debug)
	assert.True(t, opts.AllowEmptyDescription)
	assert.Equal(t, int64(DefaultTimesheetJournalID), opts.TimesheetJournalID)
	assert.Equal(t, DefaultIdentityCacheTTL, opts.IdentityCacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SENDTIME_ADDRESS", ":9090")
	t.Setenv("SENDTIME_DEBUG", "true")
	t.Setenv("SENDTIME_DEBUG_USER", "tester")
	t.Setenv("SENDTIME_ALLOW_EMPTY_DESCRIPTION", "false")
	t.Setenv("SENDTIME_TIMESHEET_JOURNAL_ID", "5")
	t.Setenv("SENDTIME_IDENTITY_CACHE_TTL", "30s")

	opts, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", opts.Address)
	assert.True(t, opts.Debug)
	assert.Equal(t, "tester", opts.DebugUser)
	assert.False(t, opts.AllowEmptyDescription)
	assert.Equal(t, int64(5), opts.TimesheetJournalID)
	assert.Equal(t, 30*time.Second, opts.IdentityCacheTTL)
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		omit string
	}{
		{"missing ERP URL", "SENDTIME_ERP_URL"},
		{"missing ERP database", "SENDTIME_ERP_DATABASE"},
		{"missing admin login", "SENDTIME_ERP_ADMIN_LOGIN"},
		{"missing admin password", "SENDTIME_ERP_ADMIN_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.omit, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.omit)
		})
	}
}
