package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/roadsafe/roadsafe/internal/pipeline"
)

// QuestionAnswerer runs one question through the answering pipeline.
// Defined here, by the consumer, so handler tests can stub it.
type QuestionAnswerer interface {
	Run(ctx context.Context, question string) (string, error)
}

// Pages serves the question form and its results.
type Pages struct {
	answerer QuestionAnswerer
	logger   *slog.Logger
}

// NewPages creates the page handler set.
func NewPages(answerer QuestionAnswerer, logger *slog.Logger) *Pages {
	return &Pages{answerer: answerer, logger: logger}
}

// Index renders the empty question form.
func (p *Pages) Index(w http.ResponseWriter, _ *http.Request) {
	p.render(w, pageData{})
}

// Process runs the submitted question through the pipeline and renders the
// three answer sections. Pipeline errors render on the page rather than as
// HTTP errors, keeping the submitted question in the form.
func (p *Pages) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	question := r.PostFormValue("question")
	if question == "" {
		p.render(w, pageData{Output1: "Please enter a question."})
		return
	}

	answer, err := p.answerer.Run(r.Context(), question)
	if err != nil {
		id, _ := RequestID(r.Context())
		p.logger.Error("pipeline failed",
			"request_id", id,
			"error", err,
		)
		p.render(w, pageData{
			Question: question,
			Output1:  fmt.Sprintf("An error occurred: %v", err),
		})
		return
	}

	split := pipeline.Split(answer)
	p.render(w, pageData{
		Question: question,
		Output1:  split.Intervention,
		Output2:  split.Explanation,
		Output3:  split.Reference,
	})
}

func (p *Pages) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		p.logger.Error("rendering page", "error", err)
	}
}

// Health reports process liveness and readiness for probes.
type Health struct {
	ready func() bool
}

// NewHealth creates the health handler. ready reports whether the pipeline
// can serve; nil means always ready.
func NewHealth(ready func() bool) *Health {
	return &Health{ready: ready}
}

// Live always returns 200 once the process is up.
func (h *Health) Live(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready returns 200 when the pipeline is wired, 503 otherwise.
func (h *Health) Ready(w http.ResponseWriter, _ *http.Request) {
	if h.ready != nil && !h.ready() {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
