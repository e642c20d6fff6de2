package pipeline

import (
	"regexp"
	"strings"
)

// FormattedAnswer is a raw answer split into the three presentation sections.
// Sections that could not be located are empty strings.
type FormattedAnswer struct {
	Intervention string // section 1: Recommended Intervention(s)
	Explanation  string // section 2: Explanation & Justification
	Reference    string // section 3: Database Reference
}

// fallbackPrefix detects the fixed insufficient-data message, which carries
// no numbered sections and must pass through whole.
const fallbackPrefix = "**Road Safety Intervention GPT Status:"

// Section headers look like "1. **Recommended Intervention(s):**". The model
// drifts on the exact title text, so only the number and bold markers anchor.
// RE2 has no lookahead; each section is cut at the next header's index instead.
var (
	head1Re = regexp.MustCompile(`(?s)1\.\s\*\*.+?\*\*`)
	head2Re = regexp.MustCompile(`(?s)2\.\s\*\*.+?\*\*`)
	head3Re = regexp.MustCompile(`(?s)3\.\s\*\*.+?\*\*`)
	next2Re = regexp.MustCompile(`\n2\.\s\*\*`)
	next3Re = regexp.MustCompile(`\n3\.\s\*\*`)
)

// Split divides an answer into its three sections. It is total: any input
// produces a result, never an error. Text with no recognizable headers lands
// whole in the Intervention slot so nothing the model said is ever dropped.
func Split(answer string) FormattedAnswer {
	if answer == "" {
		return FormattedAnswer{}
	}
	if strings.Contains(answer, fallbackPrefix) {
		return FormattedAnswer{Intervention: answer}
	}

	out := FormattedAnswer{
		Intervention: section(answer, head1Re, next2Re),
		Explanation:  section(answer, head2Re, next3Re),
		Reference:    section(answer, head3Re, nil),
	}

	if out.Intervention == "" && out.Explanation == "" && out.Reference == "" {
		return FormattedAnswer{Intervention: answer}
	}
	return out
}

// section returns the trimmed text between a header and the next header
// (or end of input). Missing header means missing section.
func section(text string, head, next *regexp.Regexp) string {
	loc := head.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	body := text[loc[1]:]
	if next != nil {
		if n := next.FindStringIndex(body); n != nil {
			body = body[:n[0]]
		}
	}
	return strings.TrimSpace(body)
}
