package pipeline

import (
	"context"
	"sync"

	"github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
)

// Input is the request payload for the answer flow.
type Input struct {
	Question string `json:"question"`
}

// Output carries both the raw answer and its three formatted sections.
type Output struct {
	Answer       string `json:"answer"`
	Intervention string `json:"intervention"`
	Explanation  string `json:"explanation"`
	Reference    string `json:"reference"`
}

// FlowName is the registered name of the answer flow in Genkit.
const FlowName = "roadsafe/answer"

// Flow is the type alias for the answer flow, exported so callers can serve
// it with genkit.Handler().
type Flow = core.Flow[Input, Output, struct{}]

// Genkit panics on re-registration, so the flow is a package singleton.
var (
	flowOnce sync.Once
	flow     *Flow
)

// NewFlow returns the answer flow singleton, defining it on first call.
// Later calls return the existing flow and ignore the arguments.
func NewFlow(g *genkit.Genkit, p *Pipeline) *Flow {
	flowOnce.Do(func() {
		flow = defineFlow(g, p)
	})
	return flow
}

// ResetFlowForTesting clears the singleton so tests can register a flow
// against a fresh genkit instance. Tests only.
func ResetFlowForTesting() {
	flowOnce = sync.Once{}
	flow = nil
}

func defineFlow(g *genkit.Genkit, p *Pipeline) *Flow {
	return genkit.DefineFlow(g, FlowName,
		func(ctx context.Context, in Input) (Output, error) {
			answer, err := p.Run(ctx, in.Question)
			if err != nil {
				return Output{}, err
			}
			split := Split(answer)
			return Output{
				Answer:       answer,
				Intervention: split.Intervention,
				Explanation:  split.Explanation,
				Reference:    split.Reference,
			}, nil
		},
	)
}
