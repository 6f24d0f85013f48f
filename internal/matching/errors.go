package matching

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload is the parent of all configuration-time matcher errors.
var ErrMalformedPayload = errors.New("malformed expected payload")

// Configuration errors raised when a matcher is constructed.
var (
	ErrInvalidXML       = fmt.Errorf("%w: no valid xml", ErrMalformedPayload)
	ErrURIContainsQuery = fmt.Errorf("%w: uri contains query parameters, use query param matchers instead", ErrMalformedPayload)
	ErrInvalidJSON      = fmt.Errorf("%w: value is not encodable as json", ErrMalformedPayload)
	ErrInvalidJSONPath  = fmt.Errorf("%w: invalid jsonpath expression", ErrMalformedPayload)
)
