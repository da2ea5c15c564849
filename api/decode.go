package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/temboplus/afloat-go/apierr"
	"github.com/temboplus/afloat-go/schema"
)

// Decode interprets resp for ep. A success status decodes and validates the
// body into T; 400 becomes an *apierr.APIError read from the body; anything
// else, or a success body of the wrong shape, is a 520 unknown error.
func Decode[T any](ep Endpoint, resp *Response) (T, error) {
	var out T
	if err := Check(ep, resp); err != nil {
		return out, err
	}
	if err := schema.DecodeValue(resp.Body, &out); err != nil {
		return out, apierr.Unknown(fmt.Errorf("%s: unexpected response: %w", ep.Name, err))
	}
	return out, nil
}

// Check applies the status rules of Decode without reading a success body.
func Check(ep Endpoint, resp *Response) error {
	if resp == nil {
		return apierr.Unknown(fmt.Errorf("%s: no response", ep.Name))
	}
	if ep.IsSuccess(resp.Status) {
		return nil
	}
	if resp.Status == http.StatusBadRequest {
		if apiErr, ok := parseBadRequest(resp.Body); ok {
			return apiErr
		}
	}
	unknown := apierr.Unknown(fmt.Errorf("%s: unexpected status %d", ep.Name, resp.Status))
	unknown.Details = map[string]any{"status": resp.Status}
	return unknown
}

// Call sends req through doer and decodes the result.
func Call[T any](ctx context.Context, doer Doer, req Request) (T, error) {
	resp, err := doer.Do(ctx, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](req.Endpoint, resp)
}

// Exec sends req through doer and discards any success body.
func Exec(ctx context.Context, doer Doer, req Request) error {
	resp, err := doer.Do(ctx, req)
	if err != nil {
		return err
	}
	return Check(req.Endpoint, resp)
}

type errorBody struct {
	StatusCode int             `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
	Error      string          `json:"error"`
	Details    map[string]any  `json:"details"`
}

// parseBadRequest reads a structured validation failure. The message may be
// a string or a list of strings.
func parseBadRequest(body []byte) (*apierr.APIError, bool) {
	var b errorBody
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, false
	}

	message, ok := parseMessage(b.Message)
	if !ok {
		return nil, false
	}
	status := b.StatusCode
	if status == 0 {
		status = http.StatusBadRequest
	}
	return &apierr.APIError{
		StatusCode: status,
		Message:    message,
		Code:       b.Error,
		Details:    b.Details,
	}, true
}

func parseMessage(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.Join(list, "; "), true
	}
	return "", false
}
