// Package http provides the HTTP handlers for the timesheet API.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/timereg/sendtime/internal/identity"
)

// maxSubmissionBytes caps the request body; submissions are small JSON
// objects and anything larger is not a timesheet entry.
const maxSubmissionBytes = 1 << 16

// TimesheetService runs a timesheet submission through the full pipeline
// and returns the id of the created record.
type TimesheetService interface {
	Submit(ctx context.Context, externalID string, body []byte) (int64, error)
}

// TimesheetHandler handles timesheet submission requests.
type TimesheetHandler struct {
	// Service runs the submission pipeline.
	Service TimesheetService
	// Source yields the externally-asserted login for a request.
	Source identity.Source
	// Log records request failures.
	Log *zap.Logger
}

// submissionResponse is the success payload.
type submissionResponse struct {
	RecordID int64 `json:"record_id"`
}

// Submit handles POST /api/timesheet. The identity comes from the
// configured source, never from the JSON body; the body is handed to the
// pipeline unparsed so the validator owns every payload rule.
func (h *TimesheetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	externalID, err := h.Source.ExternalID(r)
	if err != nil {
		respondError(w, h.Log, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSubmissionBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		respondError(w, h.Log, err)
		return
	}

	recordID, err := h.Service.Submit(r.Context(), externalID, body)
	if err != nil {
		respondError(w, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, submissionResponse{RecordID: recordID})
}

// Check handles GET /check, the unauthenticated liveness probe.
func Check(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "It works!"})
}
