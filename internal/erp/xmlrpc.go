package erp

import (
	"context"
	"fmt"

	"github.com/kolo/xmlrpc"
)

// XML-RPC endpoints exposed by the ERP.
const (
	commonEndpoint = "/xmlrpc/2/common"
	objectEndpoint = "/xmlrpc/2/object"
)

// XMLRPCClient talks to the ERP over its XML-RPC API.
type XMLRPCClient struct {
	url      string
	database string
}

// NewXMLRPCClient returns a client for the ERP reachable at url, operating
// on the named database.
func NewXMLRPCClient(url, database string) *XMLRPCClient {
	return &XMLRPCClient{url: url, database: database}
}

// OpenSession authenticates against the common endpoint and returns a
// session bound to the resulting user id. The ERP answers a failed login
// with a boolean false instead of a fault, which is reported here as a
// *BackendError like any transport failure.
func (c *XMLRPCClient) OpenSession(ctx context.Context, login, secret string) (Session, error) {
	common, err := xmlrpc.NewClient(c.url+commonEndpoint, nil)
	if err != nil {
		return nil, &BackendError{Op: "connect", Err: err}
	}
	defer func() { _ = common.Close() }()

	var reply any
	args := []any{c.database, login, secret, map[string]any{}}
	if err := common.Call("authenticate", args, &reply); err != nil {
		return nil, &BackendError{Op: "authenticate", Err: err}
	}
	uid, ok := toInt64(reply)
	if !ok || uid == 0 {
		return nil, &BackendError{Op: "authenticate", Err: fmt.Errorf("login rejected for %q", login)}
	}

	object, err := xmlrpc.NewClient(c.url+objectEndpoint, nil)
	if err != nil {
		return nil, &BackendError{Op: "connect", Err: err}
	}
	return &xmlrpcSession{rpc: object, database: c.database, uid: uid, secret: secret}, nil
}

// xmlrpcSession executes entity operations through the object endpoint.
type xmlrpcSession struct {
	rpc      *xmlrpc.Client
	database string
	uid      int64
	secret   string
}

// call invokes execute_kw for one entity method. The underlying transport
// has no context support; cancellation is checked before dialing only.
func (s *xmlrpcSession) call(ctx context.Context, entity, method string, args []any, kwargs map[string]any, reply any) error {
	if err := ctx.Err(); err != nil {
		return &BackendError{Op: method, Err: err}
	}
	params := []any{s.database, s.uid, s.secret, entity, method, args}
	if kwargs != nil {
		params = append(params, kwargs)
	}
	if err := s.rpc.Call("execute_kw", params, reply); err != nil {
		return &BackendError{Op: method, Err: err}
	}
	return nil
}

// Read performs a search_read for the given fields.
func (s *xmlrpcSession) Read(ctx context.Context, entity string, filter Filter, fields []string) ([]Record, error) {
	var reply any
	kwargs := map[string]any{"fields": fields}
	if err := s.call(ctx, entity, "search_read", []any{filter.Domain()}, kwargs, &reply); err != nil {
		return nil, err
	}

	raw, ok := reply.([]any)
	if !ok {
		return nil, &BackendError{Op: "search_read", Err: fmt.Errorf("unexpected reply type %T", reply)}
	}
	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, &BackendError{Op: "search_read", Err: fmt.Errorf("unexpected record type %T", item)}
		}
		records = append(records, Record(fields))
	}
	return records, nil
}

// Search returns matching record ids.
func (s *xmlrpcSession) Search(ctx context.Context, entity string, filter Filter) ([]int64, error) {
	var reply any
	if err := s.call(ctx, entity, "search", []any{filter.Domain()}, nil, &reply); err != nil {
		return nil, err
	}

	raw, ok := reply.([]any)
	if !ok {
		return nil, &BackendError{Op: "search", Err: fmt.Errorf("unexpected reply type %T", reply)}
	}
	ids := make([]int64, 0, len(raw))
	for _, item := range raw {
		id, ok := toInt64(item)
		if !ok {
			return nil, &BackendError{Op: "search", Err: fmt.Errorf("unexpected id type %T", item)}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Create inserts a record and returns the assigned id.
func (s *xmlrpcSession) Create(ctx context.Context, entity string, values map[string]any) (int64, error) {
	var reply any
	if err := s.call(ctx, entity, "create", []any{values}, nil, &reply); err != nil {
		return 0, err
	}
	id, ok := toInt64(reply)
	if !ok {
		return 0, &BackendError{Op: "create", Err: fmt.Errorf("unexpected id type %T", reply)}
	}
	return id, nil
}

// Write updates fields on the identified records.
func (s *xmlrpcSession) Write(ctx context.Context, entity string, ids []int64, values map[string]any) error {
	var reply any
	return s.call(ctx, entity, "write", []any{ids, values}, nil, &reply)
}

// Close shuts down the object-endpoint client and its reader goroutine.
func (s *xmlrpcSession) Close() error {
	return s.rpc.Close()
}

// toInt64 normalizes the integer encodings the wire codec may produce.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}
