package logging

import (
	"log/slog"

	"github.com/getmockd/clientmock/pkg/util"
)

// Attribute keys of clientmock records.
const (
	KeyName       = "name"
	KeyScore      = "score"
	KeyMethod     = "method"
	KeyURI        = "uri"
	KeyReason     = "reason"
	KeyRequest    = "request"
	KeyCandidates = "candidates"
	KeyClosest    = "closest"
)

// Name is the name of the expectation a record is about.
func Name(name string) slog.Attr { return slog.String(KeyName, name) }

// Score is a match score.
func Score(score int) slog.Attr { return slog.Int(KeyScore, score) }

// Method is the method of the intercepted call.
func Method(method string) slog.Attr { return slog.String(KeyMethod, method) }

// URI is the URI of the intercepted call, without query string.
func URI(uri string) slog.Attr { return slog.String(KeyURI, uri) }

// Reason explains why a call was not matched.
func Reason(reason string) slog.Attr {
	return slog.String(KeyReason, util.Truncate(reason, util.MaxLogSize))
}

// Request is a rendered request, capped at util.MaxLogSize.
func Request(rendered string) slog.Attr {
	return slog.String(KeyRequest, util.Truncate(rendered, util.MaxLogSize))
}
