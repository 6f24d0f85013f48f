package clientmock

import (
	"cmp"
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/getmockd/clientmock/internal/matching"
	"github.com/getmockd/clientmock/pkg/logging"
	"github.com/getmockd/clientmock/pkg/request"
)

// Resolver picks the expectation that answers a call.
type Resolver interface {
	Resolve(c *Collection, r *request.Request) (*Expectation, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(c *Collection, r *request.Request) (*Expectation, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(c *Collection, r *request.Request) (*Expectation, error) {
	return f(c, r)
}

// ScoreResolver is the default resolver.
//
// Every expectation is scored against the call. Expectations scoring zero
// are discarded. Among the rest, higher scores win; within a score the
// first registered expectation that still has a response wins. If every
// candidate is exhausted, the first expectation of the best score is
// returned so the caller gets its exhaustion error.
type ScoreResolver struct{}

type candidate struct {
	expectation *Expectation
	result      Result
}

// Resolve implements Resolver.
func (ScoreResolver) Resolve(c *Collection, r *request.Request) (*Expectation, error) {
	logger := c.Logger()
	expectations := c.Expectations()
	if len(expectations) == 0 {
		logger.Debug("no matching expectation", logging.Reason("collection is empty"), logging.Request(r.String()))
		return nil, &NoExpectationsError{Request: r}
	}

	buckets := make(map[int][]candidate)
	var missed []Result
	for _, e := range expectations {
		result := e.Matcher().Match(r)
		score := result.Score()
		if score == 0 {
			missed = append(missed, result)
			continue
		}
		buckets[score] = append(buckets[score], candidate{expectation: e, result: result})
	}

	if len(buckets) == 0 {
		logNoMatch(logger, r, missed)
		return nil, &NoMatchError{Request: r, Results: missed}
	}

	scores := slices.SortedFunc(maps.Keys(buckets), func(a, b int) int { return cmp.Compare(b, a) })
	for _, score := range scores {
		for _, cand := range buckets[score] {
			if cand.expectation.HasNextResponse() {
				logResolved(logger, r, cand.expectation, score)
				return cand.expectation, nil
			}
		}
	}

	best := buckets[scores[0]][0].expectation
	logResolved(logger, r, best, scores[0])
	return best, nil
}

func logResolved(logger *slog.Logger, r *request.Request, e *Expectation, score int) {
	logger.Debug("resolved expectation",
		logging.Name(e.GetName()),
		logging.Score(score),
		logging.Method(r.Method),
		logging.URI(r.URI),
	)
}

func logNoMatch(logger *slog.Logger, r *request.Request, missed []Result) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	closest := missed[0]
	for _, result := range missed[1:] {
		if hits(result) > hits(closest) {
			closest = result
		}
	}
	logger.Debug("no matching expectation",
		logging.Method(r.Method),
		logging.URI(r.URI),
		slog.Int(logging.KeyCandidates, len(missed)),
		slog.String(logging.KeyClosest, closest.Name()),
		logging.Reason(matching.GenerateReason(closest)),
	)
}

func hits(r Result) int {
	var n int
	for _, o := range r.Outcomes() {
		if o.IsHit() {
			n++
		}
	}
	return n
}
