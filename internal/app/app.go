// Package app wires the application together: Genkit, the knowledge index,
// the pipeline, and its flow. Both the serve and ask commands go through
// Setup so they share one construction path.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"

	"github.com/roadsafe/roadsafe/internal/config"
	"github.com/roadsafe/roadsafe/internal/knowledge"
	"github.com/roadsafe/roadsafe/internal/pipeline"
)

// App is the application container.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Genkit   *genkit.Genkit
	Embedder ai.Embedder
	Index    *knowledge.Index
	Pipeline *pipeline.Pipeline
	Flow     *pipeline.Flow
}

// Setup builds the application from configuration. Index construction is
// part of startup on purpose: a process that cannot embed its knowledge base
// should fail fast, not serve requests it cannot answer.
func Setup(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{Config: cfg, Logger: logger}

	g, err := provideGenkit(ctx)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	embedder := googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
	if embedder == nil {
		return nil, fmt.Errorf("embedder %q not found", cfg.EmbedderModel)
	}
	a.Embedder = embedder

	index, err := provideIndex(ctx, cfg, embedder, logger)
	if err != nil {
		return nil, err
	}
	a.Index = index

	p, err := pipeline.New(pipeline.Config{
		Genkit:    g,
		ModelName: cfg.ModelName,
		Index:     index,
		TopK:      cfg.TopK,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("building pipeline: %w", err)
	}
	a.Pipeline = p
	a.Flow = pipeline.NewFlow(g, p)

	return a, nil
}

// provideGenkit initializes Genkit with the Gemini plugin. The plugin reads
// GEMINI_API_KEY/GOOGLE_API_KEY from the environment itself.
func provideGenkit(ctx context.Context) (*genkit.Genkit, error) {
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	if g == nil {
		return nil, errors.New("initializing genkit with gemini provider")
	}
	return g, nil
}

// provideIndex loads the CSV knowledge source and embeds it. A missing or
// empty source degrades to the sentinel record with a warning; an embedding
// failure propagates and aborts startup.
func provideIndex(ctx context.Context, cfg *config.Config, embedder ai.Embedder, logger *slog.Logger) (*knowledge.Index, error) {
	records, err := knowledge.LoadCSV(cfg.DataPath)
	if err != nil {
		logger.Warn("knowledge source unavailable, indexing sentinel record",
			"path", cfg.DataPath,
			"error", err,
		)
		records = knowledge.SentinelRecords()
	}

	index, err := knowledge.NewIndex(ctx, embedder, records, logger)
	if err != nil {
		return nil, fmt.Errorf("building knowledge index: %w", err)
	}
	return index, nil
}
