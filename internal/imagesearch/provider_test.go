package imagesearch

import (
	"context"
	"errors"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingSource struct{}

func (blockingSource) Name() string { return "slow" }

func (blockingSource) SearchPhotos(ctx context.Context, _ string, _ int) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func counterValue(t *testing.T, provider, outcome string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, newSearchMetrics().providerRequests.WithLabelValues(provider, outcome).Write(&m))
	return m.GetCounter().GetValue()
}

func TestProviderSwallowsErrors(t *testing.T) {
	resetMetricsForTesting()
	p := NewProvider(&fakeSource{name: "unsplash", err: errors.New("401 unauthorized")}, time.Second)

	assert.Nil(t, p.Search(context.Background(), "外滩", 3))
	assert.Equal(t, 1.0, counterValue(t, "unsplash", "error"))
}

func TestProviderTimeout(t *testing.T) {
	resetMetricsForTesting()
	p := NewProvider(blockingSource{}, 20*time.Millisecond)

	start := time.Now()
	assert.Nil(t, p.Search(context.Background(), "外滩", 3))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1.0, counterValue(t, "slow", "error"))
}

func TestProviderTruncatesAndCounts(t *testing.T) {
	resetMetricsForTesting()
	src := &greedySource{urls: []string{"a", "b", "c", "d"}}
	p := NewProvider(src, 0)

	assert.Equal(t, []string{"a", "b"}, p.Search(context.Background(), "q", 2))
	assert.Equal(t, 1.0, counterValue(t, "greedy", "success"))

	assert.Nil(t, p.Search(context.Background(), "q", 0))
}

func TestProviderEmpty(t *testing.T) {
	resetMetricsForTesting()
	p := NewProvider(&fakeSource{name: "pexels"}, 0)

	assert.Empty(t, p.Search(context.Background(), "q", 3))
	assert.Equal(t, 1.0, counterValue(t, "pexels", "empty"))
}

func TestNilProvider(t *testing.T) {
	var p *Provider
	assert.Nil(t, NewProvider(nil, time.Second))
	assert.Nil(t, p.Search(context.Background(), "q", 3))
	assert.Equal(t, "", p.Name())
}

// greedySource ignores count, like an API that returns a full page.
type greedySource struct{ urls []string }

func (greedySource) Name() string { return "greedy" }

func (g *greedySource) SearchPhotos(context.Context, string, int) ([]string, error) {
	return g.urls, nil
}
