package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/roadsafe/roadsafe/internal/knowledge"
)

// generatorSystem constrains the model to the retrieved context and fixes
// the three-section output the formatter expects.
const generatorSystem = "You are the ROAD SAFETY INTERVENTION GPT, an expert AI tool. " +
	"Your task is to analyze the user's described road safety issue and the provided intervention suggestions. " +
	"Based ONLY on the relevant context provided, you MUST select the most suitable intervention(s) " +
	"and present your output in the following format:\n\n" +
	"1. Recommended Intervention(s): State the recommended action(s).\n" +
	"2. Explanation & Justification: Explain why this intervention is suitable for the described problem.\n" +
	"3. Database Reference: Provide the exact 'Source' and 'Clause' from the reference text that supports your recommendation." +
	"If multiple suggestions are combined, cite all relevant references. DO NOT make up interventions or references."

// Generator produces the grounded answer once the grader has approved the
// context. Unlike grading, a failed generation is request-fatal: there is
// no safe substitute for an answer the user asked for.
type Generator struct {
	caller *modelCaller
}

// NewGenerator creates a generator sharing the pipeline's model-call path.
func NewGenerator(caller *modelCaller) *Generator {
	return &Generator{caller: caller}
}

// Generate answers the question from the snippets, citing their source labels.
func (gen *Generator) Generate(ctx context.Context, question string, snippets []knowledge.Snippet) (string, error) {
	user := fmt.Sprintf("CONTEXT:\n%s\n\nROAD SAFETY ISSUE TO ADDRESS:\n%s",
		generatorContext(snippets), question)

	answer, err := gen.caller.generate(ctx, generatorSystem, user)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return answer, nil
}

// generatorContext renders snippets with their citations so the model can
// quote "Source: ..., Clause: ..." verbatim in section three.
func generatorContext(snippets []knowledge.Snippet) string {
	parts := make([]string, 0, len(snippets))
	for _, s := range snippets {
		parts = append(parts, fmt.Sprintf("Intervention Suggestion:\n%s\nReference: %s", s.Content, s.Source))
	}
	return strings.Join(parts, "\n---\n")
}
