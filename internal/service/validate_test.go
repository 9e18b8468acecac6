package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidatorService(allowEmptyDescription bool) *Service {
	return NewService(nil, nil, 1, allowEmptyDescription)
}

func TestParseSubmission_Valid(t *testing.T) {
	s := newValidatorService(true)

	req, err := s.ParseSubmission([]byte(`{"date":"2024-03-15","description":"bugfix","duration":"90","project":"Apollo"}`))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), req.Date)
	assert.Equal(t, "bugfix", req.Description)
	assert.Equal(t, 90, req.DurationMinutes)
	assert.Equal(t, "Apollo", req.ProjectQuery)
}

func TestParseSubmission_DurationAsNumber(t *testing.T) {
	s := newValidatorService(true)

	req, err := s.ParseSubmission([]byte(`{"date":"2024-03-15","description":"bugfix","duration":90,"project":"Apollo"}`))
	require.NoError(t, err)
	assert.Equal(t, 90, req.DurationMinutes)
}

func TestParseSubmission_FieldViolations(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "unparseable body",
			body:      `not a json`,
			wantField: "body",
		},
		{
			name:      "missing date",
			body:      `{"description":"x","duration":"30","project":"Apollo"}`,
			wantField: "date",
		},
		{
			name:      "malformed date",
			body:      `{"date":"15.03.2024","description":"x","duration":"30","project":"Apollo"}`,
			wantField: "date",
		},
		{
			name:      "missing description",
			body:      `{"date":"2024-03-15","duration":"30","project":"Apollo"}`,
			wantField: "description",
		},
		{
			name:      "missing duration",
			body:      `{"date":"2024-03-15","description":"x","project":"Apollo"}`,
			wantField: "duration",
		},
		{
			name:      "non-integer duration",
			body:      `{"date":"2024-03-15","description":"x","duration":"ninety","project":"Apollo"}`,
			wantField: "duration",
		},
		{
			name:      "fractional duration",
			body:      `{"date":"2024-03-15","description":"x","duration":90.5,"project":"Apollo"}`,
			wantField: "duration",
		},
		{
			name:      "missing project",
			body:      `{"date":"2024-03-15","description":"x","duration":"30"}`,
			wantField: "project",
		},
	}

	s := newValidatorService(true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ParseSubmission([]byte(tt.body))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Contains(t, verr.Error(), tt.wantField)
		})
	}
}

func TestParseSubmission_EmptyDescription(t *testing.T) {
	body := []byte(`{"date":"2024-03-15","description":"","duration":"30","project":"Apollo"}`)

	// Legacy behavior: empty descriptions pass.
	req, err := newValidatorService(true).ParseSubmission(body)
	require.NoError(t, err)
	assert.Empty(t, req.Description)

	// Strict configuration: empty descriptions are rejected.
	_, err = newValidatorService(false).ParseSubmission(body)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "description", verr.Field)
}
