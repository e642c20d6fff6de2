package knowledge

import (
	"context"
	"errors"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	chromem "github.com/philippgille/chromem-go"
)

// ErrNoEmbedding indicates the embedder returned an empty response.
var ErrNoEmbedding = errors.New("no embeddings returned")

// EmbeddingFuncFor adapts a Genkit ai.Embedder to chromem-go's per-text
// embedding callback. Both intervention records and incoming questions go
// through the same function so they live in the same vector space.
//
// chromem-go normalizes vectors itself; nothing to do here beyond the call.
func EmbeddingFuncFor(embedder ai.Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		resp, err := embedder.Embed(ctx, &ai.EmbedRequest{
			Input: []*ai.Document{ai.DocumentFromText(text, nil)},
		})
		if err != nil {
			return nil, fmt.Errorf("embedding text: %w", err)
		}
		if len(resp.Embeddings) == 0 {
			return nil, ErrNoEmbedding
		}
		return resp.Embeddings[0].Embedding, nil
	}
}
