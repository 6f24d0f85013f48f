// Package response builds the canned responses an expectation replays.
//
// A Builder describes one response (status, headers, body, or a callback
// computing it from the matched request). A Queue holds the plan of what an
// expectation returns on successive calls: nothing, one entry repeated
// forever, or a finite sequence consumed in order. Queue entries are either
// a Builder or an error to hand back to the caller.
package response
