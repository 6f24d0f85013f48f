package matching

import (
	"fmt"
	"strings"
)

const (
	tick  = "✔"
	cross = "✘"
)

// FormatOutcome renders one outcome as a diagnostic line without its score.
func FormatOutcome(o Outcome) string {
	key := ""
	if o.Key != "" {
		key = " " + o.Key
	}
	switch o.Kind {
	case KindHit:
		return fmt.Sprintf(`%s %s%s matches "%s"`, tick, o.Matcher, key, o.ActualString())
	case KindMismatch:
		return fmt.Sprintf(`%s %s%s "%s" does not match "%s"`, cross, o.Matcher, key, o.ActualString(), o.Expected)
	case KindMissing:
		return fmt.Sprintf("%s %s %s missing", cross, o.Matcher, o.Key)
	default:
		return ""
	}
}

// WriteBreakdown appends the numbered per-matcher table of one result:
// a header line, one line per outcome with its score, and the indented
// diff of any JSON mismatch.
func WriteBreakdown(b *strings.Builder, number int, r Result) {
	name := r.Name()
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(b, "#%d %s\n", number, name)

	for _, o := range r.outcomes {
		line := FormatOutcome(o)
		if line == "" {
			continue
		}
		fmt.Fprintf(b, "  %s (%d)\n", line, o.Score)
		if o.Kind == KindMismatch && o.Diff != "" {
			for _, diffLine := range strings.Split(strings.TrimSuffix(o.Diff, "\n"), "\n") {
				b.WriteString("    " + diffLine + "\n")
			}
		}
	}
}

// GenerateReason creates a one-line explanation of why a result did not
// match, naming the matched fields and the first failure.
func GenerateReason(r Result) string {
	if r.IsEmpty() {
		return "no matchers to compare"
	}

	var matched []string
	var first *Outcome
	for i := range r.outcomes {
		o := &r.outcomes[i]
		if o.IsHit() {
			matched = append(matched, o.Matcher)
		} else if first == nil {
			first = o
		}
	}

	if first == nil {
		return "all specified matchers matched"
	}

	reason := formatFailure(first)
	if len(matched) == 0 {
		return reason
	}
	return joinFields(matched) + " matched, but " + reason
}

func formatFailure(o *Outcome) string {
	subject := o.Matcher
	if o.Key != "" {
		subject += " " + o.Key
	}
	if o.Kind == KindMissing {
		return subject + " missing"
	}
	return fmt.Sprintf("%s expected %q, got %q", subject, truncate(o.Expected, 64), truncate(o.ActualString(), 64))
}

// joinFields joins field names with commas and "and".
func joinFields(fields []string) string {
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	case 2:
		return fields[0] + " and " + fields[1]
	default:
		return strings.Join(fields[:len(fields)-1], ", ") + ", and " + fields[len(fields)-1]
	}
}

// truncate shortens a string to maxLen, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
