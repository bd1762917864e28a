package harness

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// Response is a fully read HTTP response.
type Response struct {
	Request Request
	Status  int
	Header  http.Header
	Body    []byte
}

// Field looks up a value in a JSON response body by a gjson path such as "data.email".
// The result's Exists method is false if the body is not JSON or the path is absent.
func (r *Response) Field(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// IsJSON returns true if the body is a syntactically valid JSON document.
func (r *Response) IsJSON() bool {
	return gjson.ValidBytes(r.Body)
}

// Describe returns a short summary of the response for use in failure messages.
func (r *Response) Describe() string {
	const maxBody = 500
	body := string(r.Body)
	if len(body) > maxBody {
		n := maxBody
		for n > 0 && !utf8.RuneStart(body[n]) {
			n--
		}
		body = body[:n] + "..."
	}
	if body == "" {
		body = "<empty>"
	}
	return fmt.Sprintf("%s returned status %d, body: %s", r.Request, r.Status, body)
}
