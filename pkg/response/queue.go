package response

import "errors"

// Queue errors. Exhaustion errors match ErrNoResponse, mode conflicts
// match ErrAddFailed.
var (
	ErrNoResponse            = errors.New("no response available")
	ErrNoResponseAdded       = &queueError{msg: "no response configured", parent: ErrNoResponse}
	ErrAllResponsesProcessed = &queueError{msg: "all responses have already been processed", parent: ErrNoResponse}

	ErrAddFailed            = errors.New("adding response failed")
	ErrAlwaysAlreadyAdded   = &queueError{msg: "single response already added, add not possible", parent: ErrAddFailed}
	ErrResponseAlreadyAdded = &queueError{msg: "response already added, add always not possible", parent: ErrAddFailed}
)

type queueError struct {
	msg    string
	parent error
}

func (e *queueError) Error() string { return e.msg }

func (e *queueError) Unwrap() error { return e.parent }

// Entry is one planned reaction: a response to build or an error to return.
type Entry struct {
	Response *Builder
	Err      error
}

// Respond returns an entry that builds b.
func Respond(b *Builder) Entry { return Entry{Response: b} }

// Throw returns an entry that hands err to the caller.
func Throw(err error) Entry { return Entry{Err: err} }

type mode int

const (
	modeEmpty mode = iota
	modeAlways
	modeSequence
)

// Queue is the response plan of one expectation. It is either empty,
// repeats a single entry forever, or walks a finite sequence once.
// The two non-empty modes are mutually exclusive until Reset.
type Queue struct {
	mode     mode
	always   Entry
	sequence []Entry
	cursor   int
}

// Add appends e to the sequence.
func (q *Queue) Add(e Entry) error {
	if q.mode == modeAlways {
		return ErrAlwaysAlreadyAdded
	}
	q.mode = modeSequence
	q.sequence = append(q.sequence, e)
	return nil
}

// AddAlways makes e the answer to every call.
func (q *Queue) AddAlways(e Entry) error {
	switch q.mode {
	case modeAlways:
		return ErrAlwaysAlreadyAdded
	case modeSequence:
		return ErrResponseAlreadyAdded
	}
	q.mode = modeAlways
	q.always = e
	return nil
}

// Next returns the entry for the current call and advances the sequence.
func (q *Queue) Next() (Entry, error) {
	switch q.mode {
	case modeAlways:
		return q.always, nil
	case modeSequence:
		if q.cursor >= len(q.sequence) {
			return Entry{}, ErrAllResponsesProcessed
		}
		e := q.sequence[q.cursor]
		q.cursor++
		return e, nil
	default:
		return Entry{}, ErrNoResponseAdded
	}
}

// HasNext reports whether Next would succeed.
func (q *Queue) HasNext() bool {
	switch q.mode {
	case modeAlways:
		return true
	case modeSequence:
		return q.cursor < len(q.sequence)
	default:
		return false
	}
}

// IsEmpty reports whether no entry was ever added since the last Reset.
func (q *Queue) IsEmpty() bool { return q.mode == modeEmpty }

// Remaining returns the number of entries left, or -1 in always mode.
func (q *Queue) Remaining() int {
	switch q.mode {
	case modeAlways:
		return -1
	case modeSequence:
		return len(q.sequence) - q.cursor
	default:
		return 0
	}
}

// Reset empties the queue.
func (q *Queue) Reset() {
	*q = Queue{}
}
