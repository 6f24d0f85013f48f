package clientmock

import (
	"cmp"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/getmockd/clientmock/pkg/request"
)

// Call is one recorded intercepted call.
type Call struct {
	ID      string
	Request *request.Request
	seq     uint64
}

// CallStack is an ordered call history.
type CallStack []Call

// Len returns the number of calls.
func (s CallStack) Len() int { return len(s) }

// IsEmpty reports whether no call was recorded.
func (s CallStack) IsEmpty() bool { return len(s) == 0 }

// First returns the earliest call.
func (s CallStack) First() (Call, bool) {
	if len(s) == 0 {
		return Call{}, false
	}
	return s[0], true
}

// Last returns the latest call.
func (s CallStack) Last() (Call, bool) {
	if len(s) == 0 {
		return Call{}, false
	}
	return s[len(s)-1], true
}

// Requests returns the recorded requests in call order.
func (s CallStack) Requests() []*request.Request {
	out := make([]*request.Request, len(s))
	for i, c := range s {
		out[i] = c.Request
	}
	return out
}

// MergeCallStacks joins several stacks into one ordered by call time.
func MergeCallStacks(stacks ...CallStack) CallStack {
	var n int
	for _, s := range stacks {
		n += len(s)
	}
	merged := make(CallStack, 0, n)
	for _, s := range stacks {
		merged = append(merged, s...)
	}
	slices.SortStableFunc(merged, func(a, b Call) int { return cmp.Compare(a.seq, b.seq) })
	return merged
}

// callSeq orders calls across expectations.
var callSeq atomic.Uint64

func newCall(req *request.Request) Call {
	return Call{ID: uuid.NewString(), Request: req, seq: callSeq.Add(1)}
}
