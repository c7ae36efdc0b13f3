package snaptrade

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ConstructionError is returned by New when the supplied credentials or
// options cannot be used to build a client.
type ConstructionError struct {
	Field  string
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("snaptrade: invalid %s: %s", e.Field, e.Reason)
}

// APIError wraps the error body returned by the SnapTrade API.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("snaptrade: status %d (code %s): %s", e.StatusCode, e.Code, e.Detail)
	}
	return fmt.Sprintf("snaptrade: status %d: %s", e.StatusCode, e.Detail)
}

// verify turns a non-2xx response into an *APIError. The body is consumed.
func verify(res *http.Response) error {
	if res.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	body, _ := io.ReadAll(res.Body)

	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Detail == "" {
		apiErr.Detail = string(body)
	}
	// The body sometimes omits status_code; the transport value wins.
	apiErr.StatusCode = res.StatusCode
	return apiErr
}
