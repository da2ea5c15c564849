package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/temboplus/afloat-go/apierr"
)

// Request is one call to an Endpoint.
type Request struct {
	Endpoint Endpoint
	Params   map[string]string
	Query    url.Values
	Body     any
	Token    string
}

// Response is the raw status and body of a call.
type Response struct {
	Status int
	Body   []byte
}

// Doer sends requests to the backend.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// DoerFunc adapts a function to Doer.
type DoerFunc func(ctx context.Context, req Request) (*Response, error)

func (f DoerFunc) Do(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

// Client is a Doer over net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the underlying http.Client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Do sends req. Transport failures come back as a 502 *apierr.APIError; any
// status, including errors, is returned as a Response for Decode to read.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	targetURL := c.baseURL + req.Endpoint.Resolve(req.Params)
	if len(req.Query) > 0 {
		targetURL += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to marshal request: %w", req.Endpoint.Name, err)
		}
		body = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Endpoint.Method, targetURL, body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", req.Endpoint.Name, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.BadGateway(fmt.Errorf("%s: %w", req.Endpoint.Name, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.BadGateway(fmt.Errorf("%s: failed to read response: %w", req.Endpoint.Name, err))
	}

	return &Response{Status: resp.StatusCode, Body: respBody}, nil
}
