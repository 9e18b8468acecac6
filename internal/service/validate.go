package service

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/timereg/sendtime/internal/erp"
	"github.com/timereg/sendtime/internal/models"
)

// rawSubmission mirrors the inbound JSON payload before validation.
// Pointers distinguish absent fields from zero values, and duration stays
// raw because clients send it as either a number or a numeric string.
type rawSubmission struct {
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
	Duration    *json.RawMessage `json:"duration"`
	Project     *string          `json:"project"`
}

// ParseSubmission validates the raw request body into a SubmissionRequest.
// Every rule violation is terminal and reported as a *ValidationError
// naming the offending field; no partial result is ever returned.
func (s *Service) ParseSubmission(body []byte) (models.SubmissionRequest, error) {
	var raw rawSubmission
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.SubmissionRequest{}, &ValidationError{Field: "body", Reason: "request body must be a JSON object"}
	}

	if raw.Date == nil {
		return models.SubmissionRequest{}, &ValidationError{Field: "date", Reason: "date is required"}
	}
	date, err := time.Parse(erp.DateLayout, *raw.Date)
	if err != nil {
		return models.SubmissionRequest{}, &ValidationError{Field: "date", Reason: "date must be formatted as YYYY-MM-DD"}
	}

	if raw.Description == nil {
		return models.SubmissionRequest{}, &ValidationError{Field: "description", Reason: "description is required"}
	}
	if *raw.Description == "" && !s.allowEmptyDescription {
		return models.SubmissionRequest{}, &ValidationError{Field: "description", Reason: "description must not be empty"}
	}

	if raw.Duration == nil {
		return models.SubmissionRequest{}, &ValidationError{Field: "duration", Reason: "duration is required"}
	}
	minutes, err := parseMinutes(*raw.Duration)
	if err != nil {
		return models.SubmissionRequest{}, &ValidationError{Field: "duration", Reason: "duration must be an integer number of minutes"}
	}

	if raw.Project == nil || *raw.Project == "" {
		return models.SubmissionRequest{}, &ValidationError{Field: "project", Reason: "project is required"}
	}

	return models.SubmissionRequest{
		Date:            date,
		Description:     *raw.Description,
		DurationMinutes: minutes,
		ProjectQuery:    *raw.Project,
	}, nil
}

// parseMinutes accepts the duration as a JSON number or a numeric string.
func parseMinutes(raw json.RawMessage) (int, error) {
	value := strings.TrimSpace(string(raw))
	value = strings.Trim(value, `"`)
	return strconv.Atoi(value)
}
