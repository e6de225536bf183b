package mechapi

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Status classifies a response so that callers can decide on navigation
// (login page, empty state, inline message) themselves.
type Status int

const (
	StatusOK Status = iota
	StatusUnauthenticated
	StatusForbidden
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusForbidden:
		return "forbidden"
	case StatusNotFound:
		return "not_found"
	default:
		return "failed"
	}
}

// Result is the outcome of one API call.
type Result[T any] struct {
	Status     Status
	Value      T
	HTTPStatus int
	Code       string
	Message    string
	Fields     map[string][]string
	Err        error
}

func (r Result[T]) OK() bool {
	return r.Status == StatusOK
}

func statusFromHTTP(code int) Status {
	switch {
	case code >= 200 && code < 300:
		return StatusOK
	case code == http.StatusUnauthorized:
		return StatusUnauthenticated
	case code == http.StatusForbidden:
		return StatusForbidden
	case code == http.StatusNotFound:
		return StatusNotFound
	default:
		return StatusFailed
	}
}

func failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusFailed, Err: err}
}

// rawList decodes a JSON array and turns any other payload into an empty list.
type rawList []json.RawMessage

func (l *rawList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		*l = rawList{}
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		*l = rawList{}
		return nil
	}
	*l = items
	return nil
}

// decodeList skips elements that do not decode into T.
func decodeList[T any](l rawList) []T {
	out := make([]T, 0, len(l))
	for _, raw := range l {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			out = append(out, v)
		}
	}
	return out
}
