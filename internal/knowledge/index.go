// Package knowledge holds the fixed intervention knowledge base: loading
// records from CSV, embedding them, and serving nearest-neighbor lookups.
package knowledge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	chromem "github.com/philippgille/chromem-go"
)

const collectionName = "interventions"

// Document metadata keys carried through chromem.
const (
	metaCode   = "code"
	metaClause = "clause"
)

// Index is an immutable in-memory vector index over intervention records.
// All records are embedded once at construction; after that the index only
// serves reads, so it is safe for concurrent use by multiple goroutines.
type Index struct {
	collection *chromem.Collection
	size       int
	logger     *slog.Logger
}

// NewIndex embeds every record and builds the vector collection. Any failure
// here is startup-fatal by design: a service that cannot embed its knowledge
// base cannot answer anything.
func NewIndex(ctx context.Context, embedder ai.Embedder, records []Record, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection(collectionName, nil, EmbeddingFuncFor(embedder))
	if err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	docs := make([]chromem.Document, 0, len(records))
	for i, rec := range records {
		docs = append(docs, chromem.Document{
			ID:      fmt.Sprintf("rec-%d", i),
			Content: rec.Content,
			Metadata: map[string]string{
				metaCode:   rec.Code,
				metaClause: rec.Clause,
			},
		})
	}

	// Embedding N records means N model calls; let chromem parallelize a bit.
	concurrency := min(len(docs), 4)
	if err := collection.AddDocuments(ctx, docs, concurrency); err != nil {
		return nil, fmt.Errorf("embedding records: %w", err)
	}

	logger.Info("knowledge index built", "records", len(records))

	return &Index{
		collection: collection,
		size:       len(records),
		logger:     logger,
	}, nil
}

// Size returns the number of indexed records.
func (ix *Index) Size() int {
	return ix.size
}

// Lookup returns the k records most similar to the query, best match first.
// k is clamped to the collection size; chromem rejects over-asking instead
// of truncating.
func (ix *Index) Lookup(ctx context.Context, query string, k int) ([]Snippet, error) {
	if k < 1 {
		return nil, fmt.Errorf("lookup depth must be positive, got %d", k)
	}
	k = min(k, ix.collection.Count())

	results, err := ix.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	snippets := make([]Snippet, 0, len(results))
	for _, res := range results {
		snippets = append(snippets, Snippet{
			Content: res.Content,
			Source:  SourceLabel(res.Metadata[metaCode], res.Metadata[metaClause]),
		})
	}

	ix.logger.Debug("lookup complete", "query_length", len(query), "results", len(snippets))
	return snippets, nil
}
