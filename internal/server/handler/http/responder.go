package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/timereg/sendtime/internal/erp"
	"github.com/timereg/sendtime/internal/identity"
	"github.com/timereg/sendtime/internal/service"
)

// errorResponse is the JSON body for failed requests. Exception carries the
// raw backend failure on 500s; this is an internal tool and the detail is
// operationally useful. MatchingProjects is set only for ambiguity errors
// whose query was long enough to enumerate.
type errorResponse struct {
	Error            string   `json:"error"`
	Exception        string   `json:"exception,omitempty"`
	MatchingProjects []string `json:"matching_projects,omitempty"`
}

// writeJSON encodes payload as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError maps a pipeline error onto the HTTP surface:
// client-input and identity failures → 400, ambiguous project matches →
// 418 (client must disambiguate), backend and integrity faults → 500.
func respondError(w http.ResponseWriter, log *zap.Logger, err error) {
	var (
		validation *service.ValidationError
		notFound   *service.ProjectNotFoundError
		ambiguous  *service.AmbiguousProjectError
		noPeriod   *service.NoOpenPeriodError
		unknown    *identity.UnknownUserError
	)

	switch {
	case errors.As(err, &validation),
		errors.As(err, &notFound),
		errors.As(err, &noPeriod),
		errors.As(err, &unknown),
		errors.Is(err, identity.ErrMissingIdentity):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.As(err, &ambiguous):
		writeJSON(w, http.StatusTeapot, errorResponse{
			Error:            "ambiguous project name",
			MatchingProjects: ambiguous.Names,
		})

	default:
		// Backend unavailability, integrity faults and anything
		// unrecognized: *erp.BackendError, *service.MultipleOpenPeriodsError, ...
		var backend *erp.BackendError
		var multiple *service.MultipleOpenPeriodsError
		if !errors.As(err, &backend) && !errors.As(err, &multiple) {
			log.Error("unclassified pipeline failure", zap.Error(err))
		} else {
			log.Error("backend failure", zap.Error(err))
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:     "internal server error",
			Exception: err.Error(),
		})
	}
}
