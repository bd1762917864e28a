package harness

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/reqres-qa/reqres-contract-tests/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func TestNewAPIClientRequiresBaseURL(t *testing.T) {
	_, err := NewAPIClient(APIClientConfig{}, nil, time.Second)
	assert.Error(t, err)
}

func TestRequestHeadersAndBody(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(201, nil, []byte(`{"id":"123"}`)))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client, err := NewAPIClient(APIClientConfig{BaseURL: server.URL + "/api/", APIKey: "secret"}, nil, time.Second)
		require.NoError(t, err)

		var debug framework.CapturingLogger
		resp, err := client.Do(Request{Method: "POST", Path: "/users", Body: map[string]string{"name": "x"}}, &debug)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.Status)
		assert.Equal(t, "123", resp.Field("id").String())
		assert.NotEmpty(t, debug.Output())

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "/api/users", r.Request.URL.Path)
		assert.Equal(t, "secret", r.Request.Header.Get(DefaultAPIKeyHeader))
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Request.Header.Get(RequestIDHeader))
		assert.JSONEq(t, `{"name":"x"}`, string(r.Body))
	})
}

func TestCustomAPIKeyHeaderAndNoBody(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(204))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client, err := NewAPIClient(APIClientConfig{BaseURL: server.URL, APIKeyHeader: "Authorization", APIKey: "k"}, nil, time.Second)
		require.NoError(t, err)

		resp, err := client.Do(Request{Method: "DELETE", Path: "/users/7"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 204, resp.Status)
		assert.Empty(t, resp.Body)

		r := <-requestsCh
		assert.Equal(t, "k", r.Request.Header.Get("Authorization"))
		assert.Empty(t, r.Request.Header.Get("Content-Type"))
		assert.Empty(t, r.Body)
	})
}

func TestErrorStatusIsNotAnError(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(400, nil, []byte(`{"error":"Missing password"}`))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client, err := NewAPIClient(APIClientConfig{BaseURL: server.URL}, nil, time.Second)
		require.NoError(t, err)

		resp, err := client.Do(Request{Method: "POST", Path: "/register", Body: map[string]string{}}, nil)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.Status)
		assert.Equal(t, "Missing password", resp.Field("error").String())
	})
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection reset by peer")
	client, err := NewAPIClient(APIClientConfig{BaseURL: "http://service"},
		doerFunc(func(*http.Request) (*http.Response, error) { return nil, cause }), 0)
	require.NoError(t, err)

	resp, err := client.Do(Request{Method: "GET", Path: "/users/2"}, nil)
	assert.Nil(t, resp)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "GET", te.Method)
	assert.Equal(t, "http://service/users/2", te.URL)
	assert.True(t, errors.Is(err, cause))
}

func TestResponseDescribe(t *testing.T) {
	r := &Response{Request: Request{Method: "DELETE", Path: "/users/1"}, Status: 500}
	assert.Equal(t, "DELETE /users/1 returned status 500, body: <empty>", r.Describe())
	assert.False(t, r.IsJSON())
}

func TestResponseDescribeTruncatesOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", 499) + strings.Repeat("é", 10)
	r := &Response{Request: Request{Method: "GET", Path: "/users/2"}, Status: 200, Body: []byte(body)}

	desc := r.Describe()
	assert.True(t, utf8.ValidString(desc))
	assert.True(t, strings.HasSuffix(desc, "body: "+strings.Repeat("a", 499)+"..."))
}
