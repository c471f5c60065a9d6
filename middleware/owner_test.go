package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestOwnerIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandler(), OwnerIDMiddleware())
	r.GET("/whoami", func(c *gin.Context) { c.String(http.StatusOK, OwnerID(c)) })
	r.GET("/mine", RequireOwner(), func(c *gin.Context) { c.String(http.StatusOK, OwnerID(c)) })

	tests := []struct {
		name       string
		path       string
		owner      string
		wantStatus int
		wantBody   string
	}{
		{name: "owner is optional", path: "/whoami", wantStatus: http.StatusOK, wantBody: ""},
		{name: "owner is trimmed", path: "/whoami", owner: "  user-1 ", wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "owner required", path: "/mine", wantStatus: http.StatusBadRequest},
		{name: "owner present", path: "/mine", owner: "user-2", wantStatus: http.StatusOK, wantBody: "user-2"},
		{name: "owner too long", path: "/whoami", owner: strings.Repeat("x", 200), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.owner != "" {
				req.Header.Set(OwnerIDHeader, tt.owner)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("keeps upstream id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "lb-abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "lb-abc", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "lb-abc", w.Body.String())
	})

	t.Run("replaces unsafe upstream id", func(t *testing.T) {
		for _, bad := range []string{"has space", "tab\tid", strings.Repeat("x", 65)} {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(RequestIDHeader, bad)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Len(t, w.Header().Get(RequestIDHeader), 36, bad)
		}
	})
}
