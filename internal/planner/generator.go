package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Completer sends one prompt to a language model and returns its raw text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Enricher attaches photos to a parsed itinerary.
type Enricher interface {
	Enrich(ctx context.Context, it *types.Itinerary, destination string) *types.Itinerary
}

type generatorMetrics struct {
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
}

var (
	generatorMetricsInstance *generatorMetrics
	generatorMetricsOnce     sync.Once
	generatorRegistry        = prometheus.DefaultRegisterer
)

func newGeneratorMetrics() *generatorMetrics {
	generatorMetricsOnce.Do(func() {
		generatorMetricsInstance = &generatorMetrics{
			generations: promauto.With(generatorRegistry).NewCounterVec(prometheus.CounterOpts{
				Name: "itinerary_generation_total",
				Help: "Itinerary generations by outcome (success, prompt_error, llm_error, parse_error)",
			}, []string{"outcome"}),
			duration: promauto.With(generatorRegistry).NewHistogram(prometheus.HistogramOpts{
				Name:    "itinerary_generation_duration_seconds",
				Help:    "Wall time of a full generation including enrichment",
				Buckets: []float64{1, 5, 10, 20, 30, 60, 90, 120, 180},
			}),
		}
	})
	return generatorMetricsInstance
}

func resetGeneratorMetricsForTesting() {
	generatorRegistry = prometheus.NewRegistry()
	generatorMetricsInstance = nil
	generatorMetricsOnce = sync.Once{}
}

// Generator runs prompt construction, model completion, parsing and
// enrichment for one request at a time. It holds no per-request state and
// is safe for concurrent use.
type Generator struct {
	completer Completer
	enricher  Enricher
	timeout   time.Duration
	log       *zap.SugaredLogger
	metrics   *generatorMetrics
}

// NewGenerator builds a generator. A zero timeout leaves the model call
// bounded only by ctx. enricher may be nil, in which case activities keep
// empty image lists.
func NewGenerator(completer Completer, enricher Enricher, timeout time.Duration) *Generator {
	return &Generator{
		completer: completer,
		enricher:  enricher,
		timeout:   timeout,
		log:       logger.GetLogger().Named("planner"),
		metrics:   newGeneratorMetrics(),
	}
}

// Generate produces an enriched itinerary for req. Every failure is a
// *GenerationError naming the stage that failed.
func (g *Generator) Generate(ctx context.Context, req types.TravelRequest) (*types.Itinerary, error) {
	start := time.Now()
	defer func() {
		g.metrics.duration.Observe(time.Since(start).Seconds())
	}()

	req = req.Normalize()
	log := g.log.With("destination", req.Destination, "days", req.Days)

	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, g.fail(log, StagePrompt, req, err)
	}

	log.Infow("Requesting itinerary from model", "promptChars", len([]rune(prompt)))
	raw, err := g.complete(ctx, prompt)
	if err != nil {
		return nil, g.fail(log, StageLLM, req, err)
	}

	it, err := ParseItinerary(raw)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			log.Warnw("Model output rejected", "kind", pe.Kind, "field", pe.Field, "snippet", pe.Snippet)
		}
		return nil, g.fail(log, StageParse, req, err)
	}

	if len(it.DailyPlans) != req.Days {
		log.Warnw("Model returned a different number of days", "requested", req.Days, "received", len(it.DailyPlans))
	}
	if budgetDriftExceeded(it.Overview) {
		log.Warnw("Budget breakdown does not add up to total",
			"totalBudget", it.Overview.TotalBudget,
			"drift", BudgetDrift(it.Overview))
	}

	if g.enricher != nil {
		it = g.enricher.Enrich(ctx, it, req.Destination)
	}

	g.metrics.generations.WithLabelValues("success").Inc()
	log.Infow("Itinerary generated",
		"activities", it.ActivityCount(),
		"duration", time.Since(start))
	return it, nil
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return g.completer.Complete(ctx, prompt)
}

func (g *Generator) fail(log *zap.SugaredLogger, stage Stage, req types.TravelRequest, err error) error {
	g.metrics.generations.WithLabelValues(string(stage) + "_error").Inc()
	log.Errorw("Itinerary generation failed", "stage", stage, "error", err)
	return &GenerationError{Stage: stage, Destination: req.Destination, Err: err}
}
