package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"

	"github.com/roadsafe/roadsafe/internal/knowledge"
)

var (
	// ErrEmptyQuestion indicates Run was called without a question.
	ErrEmptyQuestion = errors.New("empty question")

	// ErrInvalidConfig indicates the pipeline cannot be constructed.
	ErrInvalidConfig = errors.New("invalid pipeline config")
)

// Config carries the pipeline's dependencies and tuning.
type Config struct {
	Genkit    *genkit.Genkit
	ModelName string
	Index     *knowledge.Index

	// TopK is the number of records retrieved per question.
	TopK int

	// Limiter throttles model calls across grading and generation.
	// Nil gets a conservative default.
	Limiter *rate.Limiter

	// Retry overrides DefaultRetryConfig when MaxRetries > 0.
	Retry RetryConfig

	Logger *slog.Logger
}

func (c *Config) validate() error {
	if c.Genkit == nil {
		return fmt.Errorf("%w: genkit instance required", ErrInvalidConfig)
	}
	if c.ModelName == "" {
		return fmt.Errorf("%w: model name required", ErrInvalidConfig)
	}
	if c.Index == nil {
		return fmt.Errorf("%w: knowledge index required", ErrInvalidConfig)
	}
	if c.TopK < 1 {
		return fmt.Errorf("%w: top-k must be positive, got %d", ErrInvalidConfig, c.TopK)
	}
	return nil
}

// Pipeline answers questions by retrieving intervention records, grading
// their relevance, and either generating a grounded answer or returning the
// fixed fallback. Immutable after construction.
type Pipeline struct {
	index     *knowledge.Index
	grader    *Grader
	generator *Generator
	topK      int
	logger    *slog.Logger
}

// New validates the config and wires the stages.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "pipeline")

	limiter := cfg.Limiter
	if limiter == nil {
		// Two calls per request (grade + generate); keep bursts modest.
		limiter = rate.NewLimiter(rate.Limit(2), 4)
	}

	retry := cfg.Retry
	if retry.MaxRetries <= 0 {
		retry = DefaultRetryConfig()
	}

	caller := newModelCaller(cfg.Genkit, cfg.ModelName, limiter, retry, logger)

	return &Pipeline{
		index:     cfg.Index,
		grader:    NewGrader(caller),
		generator: NewGenerator(caller),
		topK:      cfg.TopK,
		logger:    logger,
	}, nil
}

// Run drives one question through the stage graph and returns the raw answer.
// Exactly one of generate/fallback runs per request; the branch depends only
// on the grader's verdict. The context is honored at every model boundary.
func (p *Pipeline) Run(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", ErrEmptyQuestion
	}

	state := &State{Stage: StageStart, Question: question}

	for state.Stage != StageDone {
		p.logger.Debug("entering stage", "stage", state.Stage.String())

		switch state.Stage {
		case StageStart:
			state.Stage = StageRetrieve

		case StageRetrieve:
			snippets, err := p.index.Lookup(ctx, state.Question, p.topK)
			if err != nil {
				return "", fmt.Errorf("retrieve: %w", err)
			}
			state.Context = snippets
			state.Stage = StageGrade

		case StageGrade:
			verdict, err := p.grader.Grade(ctx, state.Question, state.Context)
			if err != nil {
				return "", fmt.Errorf("grade: %w", err)
			}
			state.Verdict = verdict
			state.Stage = route(verdict)
			p.logger.Info("context graded",
				"verdict", verdict.String(),
				"snippets", len(state.Context),
			)

		case StageGenerate:
			answer, err := p.generator.Generate(ctx, state.Question, state.Context)
			if err != nil {
				return "", fmt.Errorf("generate: %w", err)
			}
			state.Answer = answer
			state.Stage = StageDone

		case StageFallback:
			state.Answer = FallbackMessage
			state.Stage = StageDone

		default:
			return "", fmt.Errorf("pipeline reached unknown stage %d", state.Stage)
		}
	}

	return state.Answer, nil
}
