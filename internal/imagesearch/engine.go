package imagesearch

import (
	"context"
	"strings"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"go.uber.org/zap"
)

const (
	defaultPlaceImages = 3
	maxPlaceImages     = 10
	defaultCoverKind   = "cityscape"
)

// Engine fills itinerary activities with photos. Providers are tried in the
// order given, so the first one is preferred for every query.
type Engine struct {
	rules     *Rules
	providers []*Provider
	log       *zap.SugaredLogger
	metrics   *searchMetrics
}

func NewEngine(rules *Rules, providers ...*Provider) *Engine {
	active := make([]*Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			active = append(active, p)
		}
	}
	return &Engine{
		rules:     rules,
		providers: active,
		log:       logger.GetLogger().Named("enrichment"),
		metrics:   newSearchMetrics(),
	}
}

// Enrich replaces the images of every activity with up to three provider
// photos. Activities are visited day by day in list order and no photo is
// used twice within the itinerary. Provider failures only reduce the number
// of images.
func (e *Engine) Enrich(ctx context.Context, it *types.Itinerary, destination string) *types.Itinerary {
	if it == nil {
		return nil
	}

	for d := range it.DailyPlans {
		for a := range it.DailyPlans[d].Activities {
			it.DailyPlans[d].Activities[a].Images = []string{}
		}
	}

	seen := seenSet{}
	for d := range it.DailyPlans {
		day := &it.DailyPlans[d]
		for a := range day.Activities {
			act := &day.Activities[a]
			cat, queries := e.rules.Plan(act.Title, destination)
			act.Images = e.collect(ctx, queries, types.MaxImagesPerActivity, seen)
			e.log.Debugw("Activity enriched",
				"day", day.Day,
				"activity", act.Title,
				"category", cat,
				"queries", queries,
				"images", len(act.Images))
		}
	}

	e.log.Infow("Itinerary enriched",
		"destination", destination,
		"activities", it.ActivityCount(),
		"uniqueImages", len(seen))
	return it
}

// collect walks queries in order, asking each provider for the remaining
// shortfall, until want images are accepted or everything is exhausted.
func (e *Engine) collect(ctx context.Context, queries []string, want int, seen seenSet) []string {
	images := make([]string, 0, want)
	for _, q := range queries {
		for _, p := range e.providers {
			if len(images) >= want {
				return images
			}
			if ctx.Err() != nil {
				return images
			}
			for _, u := range p.Search(ctx, q, want-len(images)) {
				if len(images) >= want {
					break
				}
				if !seen.add(u) {
					e.metrics.images.WithLabelValues("duplicate").Inc()
					continue
				}
				e.metrics.images.WithLabelValues("accepted").Inc()
				images = append(images, u)
			}
		}
	}
	return images
}

// PlaceImages returns up to count distinct photos of a named place. count
// defaults to 3 and is capped at 10.
func (e *Engine) PlaceImages(ctx context.Context, place string, count int) []string {
	place = strings.TrimSpace(place)
	if place == "" {
		return []string{}
	}
	if count <= 0 {
		count = defaultPlaceImages
	}
	if count > maxPlaceImages {
		count = maxPlaceImages
	}
	return e.collect(ctx, []string{place + " travel landmark"}, count, seenSet{})
}

// CoverImage returns one photo for a destination, or "" when no provider has
// one. kind selects the style of shot and defaults to cityscape.
func (e *Engine) CoverImage(ctx context.Context, location, kind string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		kind = defaultCoverKind
	}
	images := e.collect(ctx, []string{location + " " + kind + " travel"}, 1, seenSet{})
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

// Rules exposes the query rules, e.g. for diagnostics.
func (e *Engine) Rules() *Rules {
	return e.rules
}
