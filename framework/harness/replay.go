package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
	"gopkg.in/yaml.v3"
)

// ReplayRoute is one recorded response in a replay file.
type ReplayRoute struct {
	Method string `yaml:"method"`
	Path   string `yaml:"path"`

	// Request, if set, is a JSON document that the request body must be equal to (ignoring
	// formatting and property order) for this route to match.
	Request string `yaml:"request,omitempty"`

	Status      int    `yaml:"status"`
	ContentType string `yaml:"contentType,omitempty"`
	Response    string `yaml:"response,omitempty"`

	requestValue ldvalue.Value
}

type replayFile struct {
	Routes []ReplayRoute `yaml:"routes"`
}

// ReplayTransport is an http.RoundTripper that answers requests from recorded responses instead
// of the network. Routes are tried in order and the first match wins.
type ReplayTransport struct {
	routes []ReplayRoute
}

// NewReplayTransport validates the routes and creates a ReplayTransport.
func NewReplayTransport(routes []ReplayRoute) (*ReplayTransport, error) {
	rt := &ReplayTransport{}
	for i, route := range routes {
		if route.Method == "" || route.Path == "" {
			return nil, fmt.Errorf("route %d: method and path are required", i)
		}
		route.Method = strings.ToUpper(route.Method)
		if route.Status == 0 {
			route.Status = http.StatusOK
		}
		if route.ContentType == "" && route.Response != "" {
			route.ContentType = "application/json"
		}
		if route.Request != "" {
			if !json.Valid([]byte(route.Request)) {
				return nil, fmt.Errorf("route %d (%s %s): request is not valid JSON", i, route.Method, route.Path)
			}
			route.requestValue = ldvalue.Parse([]byte(route.Request))
		}
		rt.routes = append(rt.routes, route)
	}
	return rt, nil
}

// LoadReplayFile reads routes from a YAML file.
func LoadReplayFile(path string) (*ReplayTransport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f replayFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("malformed replay file %s: %w", path, err)
	}
	rt, err := NewReplayTransport(f.Routes)
	if err != nil {
		return nil, fmt.Errorf("replay file %s: %w", path, err)
	}
	return rt, nil
}

// Client returns an *http.Client that uses this transport.
func (rt *ReplayTransport) Client() *http.Client {
	return &http.Client{Transport: rt}
}

func (rt *ReplayTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, err
		}
		body = data
	}

	for _, route := range rt.routes {
		if route.matches(req, body) {
			header := make(http.Header)
			if route.ContentType != "" {
				header.Set("Content-Type", route.ContentType)
			}
			return newReplayResponse(req, route.Status, header, []byte(route.Response)), nil
		}
	}

	notFoundBody, _ := json.Marshal(map[string]string{
		"error": fmt.Sprintf("missing replay route: %s %s", req.Method, req.URL.Path),
	})
	header := http.Header{"Content-Type": []string{"application/json"}}
	return newReplayResponse(req, http.StatusNotFound, header, notFoundBody), nil
}

func (r ReplayRoute) matches(req *http.Request, body []byte) bool {
	if r.Method != req.Method || r.Path != req.URL.Path {
		return false
	}
	if r.Request == "" {
		return true
	}
	if !json.Valid(body) {
		return false
	}
	return r.requestValue.Equal(ldvalue.Parse(body))
}

func newReplayResponse(req *http.Request, status int, header http.Header, body []byte) *http.Response {
	return &http.Response{
		StatusCode:    status,
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
