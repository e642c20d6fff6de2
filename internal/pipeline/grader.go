package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roadsafe/roadsafe/internal/knowledge"
)

// graderSystem instructs the model to judge retrieved context strictly.
// The JSON contract keeps the verdict machine-readable.
const graderSystem = "You are a strict document grader. Your task is to determine if the provided " +
	"intervention suggestions (CONTEXT) are relevant to the user's road safety " +
	"QUESTION. Output a single JSON object with the key 'relevance' and value 'relevant' " +
	"if the context is useful, or 'irrelevant' otherwise. Be strict."

// grade is the wire shape of the grader's answer.
type grade struct {
	Relevance string `json:"relevance"`
}

// Grader asks the model whether retrieved context actually addresses the
// question. Parse failures never fail the request: an unparseable verdict
// becomes VerdictIrrelevant, so the user gets the honest fallback instead
// of an answer built on ungraded context. Transport errors still propagate.
type Grader struct {
	caller *modelCaller
}

// NewGrader creates a grader sharing the pipeline's model-call path.
func NewGrader(caller *modelCaller) *Grader {
	return &Grader{caller: caller}
}

// Grade returns the model's verdict on the (question, context) pair.
func (gr *Grader) Grade(ctx context.Context, question string, snippets []knowledge.Snippet) (Verdict, error) {
	user := fmt.Sprintf("QUESTION: %s\n\nCONTEXT:\n%s", question, graderContext(snippets))

	raw, err := gr.caller.generate(ctx, graderSystem, user)
	if err != nil {
		return VerdictIrrelevant, fmt.Errorf("grading context: %w", err)
	}

	var g grade
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &g); err != nil {
		gr.caller.logger.Warn("unparseable grader output, defaulting to irrelevant",
			"error", err,
			"raw", truncate(raw, 200),
		)
		return VerdictIrrelevant, nil
	}

	if strings.EqualFold(strings.TrimSpace(g.Relevance), "relevant") {
		return VerdictRelevant, nil
	}
	return VerdictIrrelevant, nil
}

// graderContext renders snippets for the grader. Source labels are withheld
// here on purpose: relevance is judged on content alone.
func graderContext(snippets []knowledge.Snippet) string {
	parts := make([]string, 0, len(snippets))
	for _, s := range snippets {
		parts = append(parts, fmt.Sprintf("Intervention Content:\n%s\n", s.Content))
	}
	return strings.Join(parts, "\n---\n")
}

// stripCodeFences removes ```json ... ``` wrapping from model output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

// truncate shortens s to at most n bytes for logging.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
