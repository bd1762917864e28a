package harness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/reqres-qa/reqres-contract-tests/framework"

	"github.com/google/uuid"
)

const (
	DefaultAPIKeyHeader = "x-api-key"
	RequestIDHeader     = "X-Request-Id"
)

// Doer is the part of *http.Client that the API client needs. Tests and offline runs can supply
// anything that produces responses, such as an *http.Client with a ReplayTransport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIClientConfig describes the service that an APIClient talks to.
type APIClientConfig struct {
	// BaseURL is prepended to every request path, for instance "https://reqres.in/api".
	BaseURL string

	// APIKeyHeader is the name of the header that carries APIKey. Defaults to DefaultAPIKeyHeader.
	APIKeyHeader string

	// APIKey is sent with every request if it is non-empty.
	APIKey string
}

// APIClient sends requests to the service under test and captures the responses. It holds no
// per-test state, so a single instance can be shared by all tests.
type APIClient struct {
	config     APIClientConfig
	httpClient Doer
}

// Request describes one call to the service.
type Request struct {
	Method string
	Path   string

	// Body, if not nil, is marshaled to JSON and sent with a JSON content type.
	Body interface{}
}

func (r Request) String() string {
	return r.Method + " " + r.Path
}

// TransportError means that no HTTP response was received at all, for instance because of a DNS
// failure, a refused connection, or a timeout. It is distinct from the service returning an
// unexpected status.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s failed before a response was received: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewAPIClient creates an APIClient. If httpClient is nil, an *http.Client with the given
// timeout is used.
func NewAPIClient(config APIClientConfig, httpClient Doer, timeout time.Duration) (*APIClient, error) {
	if config.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	if config.APIKeyHeader == "" {
		config.APIKeyHeader = DefaultAPIKeyHeader
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &APIClient{config: config, httpClient: httpClient}, nil
}

// BaseURL returns the base URL that request paths are appended to.
func (c *APIClient) BaseURL() string {
	return c.config.BaseURL
}

// Do sends a request and reads the whole response. A non-nil error is either a problem building
// the request or a *TransportError; any HTTP status, including errors, is returned as a Response.
func (c *APIClient) Do(r Request, logger framework.Logger) (*Response, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	url := c.config.BaseURL + r.Path

	var body io.Reader
	var bodyData []byte
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("can't serialize request body for %s: %w", r, err)
		}
		bodyData = data
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(r.Method, url, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set(c.config.APIKeyHeader, c.config.APIKey)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	if bodyData != nil {
		logger.Printf("Sending %s %s (request ID %s) with body: %s", r.Method, url, requestID, string(bodyData))
	} else {
		logger.Printf("Sending %s %s (request ID %s)", r.Method, url, requestID)
	}
	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Printf("Request failed: %s", err)
		return nil, &TransportError{Method: r.Method, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Printf("Failed to read response body: %s", err)
		return nil, &TransportError{Method: r.Method, URL: url, Err: err}
	}

	logger.Printf("Received status %d after %s with body: %s", resp.StatusCode, time.Since(startTime), string(respData))
	return &Response{
		Request: r,
		Status:  resp.StatusCode,
		Header:  resp.Header,
		Body:    respData,
	}, nil
}
