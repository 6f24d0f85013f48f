package fixture

// Document is a parsed fixture file.
type Document struct {
	Version      string        `json:"version" yaml:"version"`
	Expectations []Expectation `json:"expectations" yaml:"expectations"`

	// Source is the file the document was loaded from, empty when parsed
	// from memory.
	Source string `json:"-" yaml:"-"`
}

// Expectation declares one request expectation and its responses.
type Expectation struct {
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	Request   Request    `json:"request" yaml:"request"`
	Responses []Response `json:"responses,omitempty" yaml:"responses,omitempty"`
	Always    *Response  `json:"always,omitempty" yaml:"always,omitempty"`
}

// Request lists the conditions a call must satisfy. Unset fields are not
// matched.
type Request struct {
	Method        string               `json:"method,omitempty" yaml:"method,omitempty"`
	URI           string               `json:"uri,omitempty" yaml:"uri,omitempty"`
	URIParams     map[string]string    `json:"uriParams,omitempty" yaml:"uriParams,omitempty"`
	Headers       map[string]string    `json:"headers,omitempty" yaml:"headers,omitempty"`
	QueryParams   map[string]string    `json:"queryParams,omitempty" yaml:"queryParams,omitempty"`
	RequestParams map[string]string    `json:"requestParams,omitempty" yaml:"requestParams,omitempty"`
	Multiparts    map[string]Multipart `json:"multiparts,omitempty" yaml:"multiparts,omitempty"`
	JSON          any                  `json:"json,omitempty" yaml:"json,omitempty"`
	XML           string               `json:"xml,omitempty" yaml:"xml,omitempty"`
	Content       *string              `json:"content,omitempty" yaml:"content,omitempty"`
	JSONPath      map[string]any       `json:"jsonPath,omitempty" yaml:"jsonPath,omitempty"`

	// That is an expression evaluated against the normalized request.
	That string `json:"that,omitempty" yaml:"that,omitempty"`
}

// Multipart declares the expected attributes of one multipart part.
type Multipart struct {
	Mimetype string `json:"mimetype,omitempty" yaml:"mimetype,omitempty"`
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Content  string `json:"content,omitempty" yaml:"content,omitempty"`
}

// Response is either a response to return or an error to raise.
type Response struct {
	Status  int               `json:"status,omitempty" yaml:"status,omitempty"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body    *string           `json:"body,omitempty" yaml:"body,omitempty"`
	JSON    any               `json:"json,omitempty" yaml:"json,omitempty"`
	Error   string            `json:"error,omitempty" yaml:"error,omitempty"`
}
