package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Client errors.
var (
	ErrNotAuthenticated = errors.New("not authenticated: set api.auth_cookie or CULTIVAR_AUTH_COOKIE")
	ErrEmptyID          = errors.New("id cannot be empty")
)

// StatusError is returned when the backend answers with an unexpected status.
type StatusError struct {
	Method string
	Path   string
	Status int
	// Code is the backend error code, e.g. "DATABASE002", when the body carried one.
	Code string
	// Detail is the payload of a parameterised code such as DATABASE001.
	Detail string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	if e.Code != "" {
		msg += " (" + e.Code
		if e.Detail != "" {
			msg += ": " + e.Detail
		}
		msg += ")"
	}
	return msg
}

// NotFound reports whether the backend did not find the record.
func (e *StatusError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsNotFound reports whether err is a StatusError for a missing record.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.NotFound()
}

// errorBody is the backend error envelope. Unit codes arrive as a string
// ("AUTH001"), parameterised codes as a single-key object
// ({"DATABASE001": "detail"}).
type errorBody struct {
	Code json.RawMessage `json:"code"`
}

// parseErrorCode extracts the code and detail from an error response body.
func parseErrorCode(body []byte) (code, detail string) {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Code) == 0 {
		return "", ""
	}

	if err := json.Unmarshal(eb.Code, &code); err == nil {
		return code, ""
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(eb.Code, &tagged); err != nil || len(tagged) == 0 {
		return "", ""
	}
	keys := make([]string, 0, len(tagged))
	for k := range tagged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	code = keys[0]

	var s string
	if err := json.Unmarshal(tagged[code], &s); err == nil {
		return code, s
	}
	return code, strings.TrimSpace(string(tagged[code]))
}
