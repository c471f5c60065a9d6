package pexels

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPhotos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "xiaolongbao soup dumplings food dish", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))
		assert.Equal(t, "landscape", r.URL.Query().Get("orientation"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"photos":[
			{"id":1,"src":{"large":"https://images.pexels.com/photos/1/a.jpg"}},
			{"id":2,"src":{"large":""}},
			{"id":3,"src":{"large":"https://images.pexels.com/photos/3/c.jpg"}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	urls, err := c.SearchPhotos(context.Background(), "xiaolongbao soup dumplings food dish", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://images.pexels.com/photos/1/a.jpg",
		"https://images.pexels.com/photos/3/c.jpg",
	}, urls)
}

func TestSearchPhotosErrors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := NewClient("").SearchPhotos(context.Background(), "q", 1)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewClient("k", WithBaseURL(srv.URL)).SearchPhotos(context.Background(), "q", 1)
		assert.ErrorContains(t, err, "429")
	})

	t.Run("bad json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"photos":`))
		}))
		defer srv.Close()

		_, err := NewClient("k", WithBaseURL(srv.URL)).SearchPhotos(context.Background(), "q", 1)
		assert.ErrorContains(t, err, "decode")
	})
}

func TestClampPerPage(t *testing.T) {
	assert.Equal(t, 1, clampPerPage(0))
	assert.Equal(t, 3, clampPerPage(3))
	assert.Equal(t, 80, clampPerPage(500))
}
