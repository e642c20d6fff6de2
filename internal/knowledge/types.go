package knowledge

import "fmt"

// Sentinel record values substituted when the data source cannot be read.
// The index is never empty: downstream stages never special-case "no index",
// they just see a record whose source label reads "Source: ERR, Clause: 0".
const (
	SentinelCode    = "ERR"
	SentinelClause  = "0"
	SentinelContent = "Error: Data Source unavailable."
)

// Record is one immutable knowledge-base entry: an intervention description
// plus the code/clause citation it came from. Records are created once at
// startup and never mutated.
type Record struct {
	Content string // free text describing the intervention
	Code    string // citation code
	Clause  string // citation sub-reference
}

// Snippet is one retrieved (content, source label) pair. Snippets are produced
// fresh per lookup and owned by the request that asked for them.
type Snippet struct {
	Content string
	Source  string // "Source: {code}, Clause: {clause}"
}

// SourceLabel formats a record's citation the way answers must quote it.
func SourceLabel(code, clause string) string {
	return fmt.Sprintf("Source: %s, Clause: %s", code, clause)
}

// SentinelRecords returns the single-record substitute used when the data
// source is missing or empty.
func SentinelRecords() []Record {
	return []Record{{
		Content: SentinelContent,
		Code:    SentinelCode,
		Clause:  SentinelClause,
	}}
}
