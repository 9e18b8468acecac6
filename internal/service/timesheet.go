// Package service implements the timesheet submission pipeline: identity
// resolution, payload validation, project resolution, open-period location
// and entry creation. Stages run strictly in that order; the first failing
// stage aborts the request and nothing downstream runs.
package service

import (
	"context"
	"time"

	"github.com/timereg/sendtime/internal/erp"
	"github.com/timereg/sendtime/internal/models"
)

// shortQueryLimit is the query length (in characters) above which an
// ambiguous match enumerates its candidates. Shorter queries are assumed
// too generic for the enumeration to help.
const shortQueryLimit = 3

// IdentityResolver resolves an externally-asserted login to an ERP identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, externalID string) (models.Identity, error)
}

// Service runs timesheet submissions against the ERP.
type Service struct {
	resolver              IdentityResolver
	client                erp.Client
	journalID             int64
	allowEmptyDescription bool
}

// NewService constructs a Service. journalID selects the analytic journal
// created entries are booked into; allowEmptyDescription controls whether
// an empty (but present) description passes validation.
func NewService(resolver IdentityResolver, client erp.Client, journalID int64, allowEmptyDescription bool) *Service {
	return &Service{
		resolver:              resolver,
		client:                client,
		journalID:             journalID,
		allowEmptyDescription: allowEmptyDescription,
	}
}

// Submit runs the full pipeline for one submission and returns the id of
// the created time-entry record. A non-nil error means no record was
// created; there is no partial write and no retry.
func (s *Service) Submit(ctx context.Context, externalID string, body []byte) (int64, error) {
	identity, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return 0, err
	}

	session, err := s.client.OpenSession(ctx, identity.ExternalID, identity.Secret)
	if err != nil {
		return 0, err
	}
	defer func() { _ = session.Close() }()

	request, err := s.ParseSubmission(body)
	if err != nil {
		return 0, err
	}

	project, err := resolveProject(ctx, session, request.ProjectQuery)
	if err != nil {
		return 0, err
	}

	period, err := findOpenPeriod(ctx, session, identity.ERPUserID, request.Date)
	if err != nil {
		return 0, err
	}

	return s.createEntry(ctx, session, request, project, period, identity)
}

// resolveProject matches the free-text query against open projects by
// case-insensitive substring. Exactly one match is required: zero matches
// fail as *ProjectNotFoundError, several as *AmbiguousProjectError.
func resolveProject(ctx context.Context, session erp.Session, query string) (models.ProjectMatch, error) {
	filter := erp.Where("name", erp.OpILike, query).And("state", erp.OpEq, "open")
	records, err := session.Read(ctx, erp.EntityProject, filter, []string{"id", "name"})
	if err != nil {
		return models.ProjectMatch{}, err
	}

	switch len(records) {
	case 0:
		return models.ProjectMatch{}, &ProjectNotFoundError{Query: query}
	case 1:
		return models.ProjectMatch{ID: records[0].Int("id"), Name: records[0].Str("name")}, nil
	}

	ambiguous := &AmbiguousProjectError{Query: query}
	if len([]rune(query)) > shortQueryLimit {
		for _, rec := range records {
			ambiguous.Names = append(ambiguous.Names, rec.Str("name"))
		}
	}
	return models.ProjectMatch{}, ambiguous
}

// findOpenPeriod locates the single draft/new timesheet period owned by
// userID whose window covers the full calendar month containing date.
// Zero matches fail as *NoOpenPeriodError; more than one is a backend
// data-integrity fault reported as *MultipleOpenPeriodsError.
func findOpenPeriod(ctx context.Context, session erp.Session, userID int64, date time.Time) (models.TimesheetPeriod, error) {
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	filter := erp.Where("user_id", erp.OpEq, userID).
		And("state", erp.OpIn, []string{models.PeriodStateDraft, models.PeriodStateNew}).
		And("date_from", erp.OpLTE, monthStart.Format(erp.DateLayout)).
		And("date_to", erp.OpGTE, monthEnd.Format(erp.DateLayout))
	records, err := session.Read(ctx, erp.EntityPeriod, filter, []string{"id", "user_id", "state", "date_from", "date_to"})
	if err != nil {
		return models.TimesheetPeriod{}, err
	}

	switch {
	case len(records) == 0:
		return models.TimesheetPeriod{}, &NoOpenPeriodError{UserID: userID, Month: monthStart}
	case len(records) > 1:
		return models.TimesheetPeriod{}, &MultipleOpenPeriodsError{UserID: userID, Count: len(records)}
	}

	return periodFromRecord(records[0])
}

// periodFromRecord decodes one period record into its typed form.
func periodFromRecord(rec erp.Record) (models.TimesheetPeriod, error) {
	from, err := rec.Date("date_from")
	if err != nil {
		return models.TimesheetPeriod{}, &erp.BackendError{Op: "decode", Err: err}
	}
	to, err := rec.Date("date_to")
	if err != nil {
		return models.TimesheetPeriod{}, &erp.BackendError{Op: "decode", Err: err}
	}
	return models.TimesheetPeriod{
		ID:          rec.Int("id"),
		OwnerUserID: rec.Int("user_id"),
		State:       rec.Str("state"),
		MonthStart:  from,
		MonthEnd:    to,
	}, nil
}

// createEntry builds the time-entry fields and performs the single create
// call. Duration is converted from minutes to fractional hours.
func (s *Service) createEntry(ctx context.Context, session erp.Session, request models.SubmissionRequest, project models.ProjectMatch, period models.TimesheetPeriod, identity models.Identity) (int64, error) {
	values := map[string]any{
		"date":        request.Date.Format(erp.DateLayout),
		"name":        request.Description,
		"unit_amount": float64(request.DurationMinutes) / 60,
		"account_id":  project.ID,
		"sheet_id":    period.ID,
		"user_id":     identity.ERPUserID,
		"journal_id":  s.journalID,
	}
	return session.Create(ctx, erp.EntityAnalyticLine, values)
}
