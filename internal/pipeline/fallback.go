package pipeline

// FallbackMessage is returned verbatim whenever the grader rejects the
// retrieved context. It is a fixed string, never model-generated, so the
// insufficient-data path can't hallucinate.
const FallbackMessage = "**Road Safety Intervention GPT Status: Insufficient Data**\n\n" +
	"I was unable to find specific, highly relevant road safety interventions in the database " +
	"that directly address the issue you described. Please try rephrasing your road safety problem, " +
	"or provide more context about the road type, specific hazard, or environment."
