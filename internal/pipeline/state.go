// Package pipeline runs a question through retrieval, relevance grading, and
// answer generation as an explicit state machine. Each request gets its own
// State; the pipeline itself holds only immutable dependencies and is safe
// for concurrent use.
package pipeline

import "github.com/roadsafe/roadsafe/internal/knowledge"

// Verdict is the grader's decision about retrieved context.
type Verdict int

const (
	// VerdictIrrelevant routes to the fallback. It is also the default when
	// the grader's output cannot be parsed: a wrong "insufficient data"
	// message is safer than an answer grounded in junk context.
	VerdictIrrelevant Verdict = iota

	// VerdictRelevant routes to answer generation.
	VerdictRelevant
)

func (v Verdict) String() string {
	if v == VerdictRelevant {
		return "relevant"
	}
	return "irrelevant"
}

// Stage identifies a node in the pipeline graph.
type Stage int

const (
	StageStart Stage = iota
	StageRetrieve
	StageGrade
	StageGenerate
	StageFallback
	StageDone
)

var stageNames = map[Stage]string{
	StageStart:    "start",
	StageRetrieve: "retrieve",
	StageGrade:    "grade",
	StageGenerate: "generate",
	StageFallback: "fallback",
	StageDone:     "done",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// State is the per-request accumulator threaded through the stages.
// Never shared across requests.
type State struct {
	Stage    Stage
	Question string
	Context  []knowledge.Snippet
	Verdict  Verdict
	Answer   string
}

// route picks the stage after grading. It is a pure function of the verdict:
// no stage other than grading influences the branch.
func route(v Verdict) Stage {
	if v == VerdictRelevant {
		return StageGenerate
	}
	return StageFallback
}
