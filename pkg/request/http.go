package request

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// FromHTTP normalizes an outgoing *http.Request. The request body is
// consumed and replaced by nothing; callers that need it again must keep a copy.
// The URI is the absolute URL (scheme, host and path) without query or fragment.
func FromHTTP(r *http.Request) (*Request, error) {
	names := make([]string, 0, len(r.Header))
	for name := range r.Header {
		names = append(names, name)
	}
	slices.Sort(names)

	headers := make([]string, 0, len(names))
	for _, name := range names {
		headers = append(headers, name+": "+strings.Join(r.Header[name], ", "))
	}
	if r.Host != "" && r.URL.Host != "" && r.Host != r.URL.Host {
		headers = append(headers, "Host: "+r.Host)
	}

	opts := Options{Headers: headers}
	if r.Body != nil && r.Body != http.NoBody {
		data, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		if len(data) > 0 {
			opts.Body = data
		}
	}

	u := *r.URL
	u.Fragment = ""
	u.RawFragment = ""

	return Normalize(r.Method, u.String(), opts)
}
