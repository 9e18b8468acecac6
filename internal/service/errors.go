package service

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError reports a missing or malformed field in the submission
// payload. Each violation is terminal and names exactly one field.
type ValidationError struct {
	// Field is the offending payload field ("body" for an unparseable payload).
	Field string
	// Reason is the client-facing description of the violation.
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ProjectNotFoundError reports a project query matching no open project.
type ProjectNotFoundError struct {
	// Query is the free-text project name that matched nothing.
	Query string
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("no open project matching %q", e.Query)
}

// AmbiguousProjectError reports a project query matching more than one open
// project. Names carries the candidate project names, but only when the
// query was long enough to make the enumeration useful; for short queries
// it is nil.
type AmbiguousProjectError struct {
	// Query is the free-text project name that matched several projects.
	Query string
	// Names lists the matching project names, or nil for short queries.
	Names []string
}

func (e *AmbiguousProjectError) Error() string {
	if len(e.Names) == 0 {
		return fmt.Sprintf("ambiguous project name %q", e.Query)
	}
	return fmt.Sprintf("ambiguous project name %q: matches %s", e.Query, strings.Join(e.Names, ", "))
}

// NoOpenPeriodError reports that the user has no draft timesheet period
// covering the submission month. This is the expected case for a user who
// has not yet opened their monthly sheet.
type NoOpenPeriodError struct {
	// UserID is the ERP user the period was searched for.
	UserID int64
	// Month is the first day of the month no period covers.
	Month time.Time
}

func (e *NoOpenPeriodError) Error() string {
	return fmt.Sprintf("no open timesheet period for %s", e.Month.Format("2006-01"))
}

// MultipleOpenPeriodsError reports more than one open period covering the
// same month for one user. The ERP data model is expected to prevent this,
// so it is treated as a backend data-integrity fault, not a client error.
type MultipleOpenPeriodsError struct {
	// UserID is the ERP user owning the conflicting periods.
	UserID int64
	// Count is the number of open periods found.
	Count int
}

func (e *MultipleOpenPeriodsError) Error() string {
	return fmt.Sprintf("found %d open timesheet periods for user %d, expected at most one", e.Count, e.UserID)
}
