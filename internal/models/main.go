// Package models defines the core data structures passed between the
// timesheet pipeline stages.
package models

import "time"

// Identity is a resolved ERP user for an externally-asserted login.
type Identity struct {
	// ExternalID is the login asserted by the upstream proxy.
	ExternalID string
	// ERPUserID is the numeric id of the matching ERP user record.
	ERPUserID int64
	// Secret is the per-user generated ERP credential used to open the
	// user's own session. Never the user's real-world password.
	Secret string
}

// SubmissionRequest is a fully validated timesheet submission. One is built
// per HTTP call; no partially validated request ever leaves the validator.
type SubmissionRequest struct {
	// Date is the calendar day the work was performed on.
	Date time.Time
	// Description is the free-text activity description.
	Description string
	// DurationMinutes is the worked time in whole minutes.
	DurationMinutes int
	// ProjectQuery is the free-text project name to be resolved.
	ProjectQuery string
}

// ProjectMatch is an ERP project record a query resolved to.
type ProjectMatch struct {
	// ID is the ERP project/account id.
	ID int64
	// Name is the full project name as stored in the ERP.
	Name string
}

// TimesheetPeriod is a monthly timesheet record owned by a user. Periods
// pre-exist in the ERP and are never created by this system.
type TimesheetPeriod struct {
	// ID is the ERP period record id.
	ID int64
	// OwnerUserID is the ERP user owning the period.
	OwnerUserID int64
	// State is the ERP workflow state ("draft", "new", "open", "closed", ...).
	State string
	// MonthStart is the first day covered by the period.
	MonthStart time.Time
	// MonthEnd is the last day covered by the period.
	MonthEnd time.Time
}

// Period states in which time entries may still be attached.
const (
	PeriodStateDraft = "draft"
	PeriodStateNew   = "new"
)

// AnalyticLine is the time-entry record created per successful submission.
// Its lifecycle belongs entirely to the ERP once created.
type AnalyticLine struct {
	// ID is the identifier assigned by the ERP on creation.
	ID int64
	// Date is the work day.
	Date time.Time
	// ProjectID links the entry to the resolved project.
	ProjectID int64
	// PeriodID links the entry to the open timesheet period.
	PeriodID int64
	// UserID is the ERP user the entry is booked for.
	UserID int64
	// DurationHours is the worked time converted from minutes.
	DurationHours float64
	// Description is the free-text activity description.
	Description string
}
