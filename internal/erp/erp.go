// Package erp provides the client adapter for the external ERP backend.
// It exposes generic read/search/create/write operations over named ERP
// entities and a typed filter builder, keeping the wire protocol out of the
// business packages.
package erp

import (
	"context"
	"fmt"
	"time"
)

// Entity names of the ERP records this system touches.
const (
	// EntityUser is the ERP user entity.
	EntityUser = "res.users"
	// EntityProject is the analytic account entity backing projects.
	EntityProject = "account.analytic.account"
	// EntityPeriod is the monthly timesheet sheet entity.
	EntityPeriod = "hr_timesheet_sheet.sheet"
	// EntityAnalyticLine is the time-entry entity.
	EntityAnalyticLine = "hr.analytic.timesheet"
)

// DateLayout is the calendar date format used on the ERP wire.
const DateLayout = "2006-01-02"

// Client opens authenticated ERP sessions.
type Client interface {
	// OpenSession authenticates login/secret against the ERP and returns
	// a session bound to that user. Transport and authentication failures
	// are reported as *BackendError.
	OpenSession(ctx context.Context, login, secret string) (Session, error)
}

// Session is an authenticated connection to the ERP. Calls are blocking
// network I/O; no retries are attempted on failure.
type Session interface {
	// Read returns the given fields of all records of entity matching filter.
	Read(ctx context.Context, entity string, filter Filter, fields []string) ([]Record, error)
	// Search returns the ids of all records of entity matching filter.
	Search(ctx context.Context, entity string, filter Filter) ([]int64, error)
	// Create inserts a new record and returns its generated id.
	Create(ctx context.Context, entity string, values map[string]any) (int64, error)
	// Write updates the given fields on the records identified by ids.
	Write(ctx context.Context, entity string, ids []int64, values map[string]any) error
	// Close releases the session's connection resources. The session
	// must not be used afterwards.
	Close() error
}

// BackendError reports a transport or authentication failure talking to the
// ERP. It is never retried and surfaces as a 500-class response.
type BackendError struct {
	// Op names the failing operation ("authenticate", "search_read", ...).
	Op string
	// Err is the underlying failure.
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("erp: %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Op is a filter comparison operator.
type Op string

// Supported filter operators.
const (
	OpEq    Op = "="
	OpILike Op = "ilike"
	OpIn    Op = "in"
	OpGTE   Op = ">="
	OpLTE   Op = "<="
)

// Condition is a single field comparison in a filter.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Filter is a conjunction of conditions. Values are passed as typed
// arguments, never assembled into expression strings by callers.
type Filter []Condition

// Where starts a filter with a single condition.
func Where(field string, op Op, value any) Filter {
	return Filter{{Field: field, Op: op, Value: value}}
}

// And appends a condition to the filter, returning the extended filter.
func (f Filter) And(field string, op Op, value any) Filter {
	return append(f, Condition{Field: field, Op: op, Value: value})
}

// Domain renders the filter in the ERP's triplet domain form, e.g.
// [["name", "ilike", "apollo"], ["state", "=", "open"]].
func (f Filter) Domain() []any {
	domain := make([]any, 0, len(f))
	for _, c := range f {
		domain = append(domain, []any{c.Field, string(c.Op), c.Value})
	}
	return domain
}

// Record is one ERP record as returned by Read. Field values arrive with
// whatever scalar types the wire codec produced; the accessors below
// normalize them so consumers can decode into their own typed structs.
type Record map[string]any

// Int returns the named field as an int64. Unset fields and non-numeric
// values return 0.
func (r Record) Int(field string) int64 {
	switch v := r[field].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Str returns the named field as a string. The ERP encodes unset text
// fields as boolean false; those return "".
func (r Record) Str(field string) string {
	if s, ok := r[field].(string); ok {
		return s
	}
	return ""
}

// Date parses the named field as a calendar date. Unset or malformed
// values report an error.
func (r Record) Date(field string) (time.Time, error) {
	s := r.Str(field)
	if s == "" {
		return time.Time{}, fmt.Errorf("erp: record field %q is not a date", field)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("erp: record field %q: %w", field, err)
	}
	return t, nil
}
