package handlers

import (
	"net/http"
	"strings"

	apperrors "github.com/NomadCrew/nomad-crew-itinerary/errors"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/gin-gonic/gin"
)

const (
	defaultPlacePhotos = 3
	maxPlacePhotos     = 10
	defaultCoverKind   = "cityscape"
)

type PhotoHandler struct {
	photos PhotoSearcher
}

func NewPhotoHandler(photos PhotoSearcher) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// PlacePhotosHandler godoc
// @Summary Photos of a place
// @Description Searches the photo providers for a named place. Provider failures yield an empty list.
// @Tags photos
// @Produce json
// @Param name query string true "Place name"
// @Param count query int false "Number of photos (default 3, max 10)"
// @Success 200 {object} types.PlacePhotos
// @Failure 400 {object} types.ErrorResponse "Missing name"
// @Router /v1/photos/place [get]
func (h *PhotoHandler) PlacePhotosHandler(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		_ = c.Error(apperrors.ValidationFailed("Invalid query parameter", "name is required"))
		c.Abort()
		return
	}
	count, ok := queryInt(c, "count", defaultPlacePhotos)
	if !ok {
		return
	}
	if count < 1 {
		count = defaultPlacePhotos
	}
	if count > maxPlacePhotos {
		count = maxPlacePhotos
	}

	images := h.photos.PlaceImages(c.Request.Context(), name, count)
	if images == nil {
		images = []string{}
	}
	c.JSON(http.StatusOK, types.PlacePhotos{Place: name, Images: images})
}

// DestinationCoverHandler godoc
// @Summary Cover photo of a destination
// @Tags photos
// @Produce json
// @Param location query string true "Destination"
// @Param kind query string false "Scene kind (default cityscape)"
// @Success 200 {object} types.DestinationCover
// @Failure 400 {object} types.ErrorResponse "Missing location"
// @Router /v1/photos/destination [get]
func (h *PhotoHandler) DestinationCoverHandler(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		_ = c.Error(apperrors.ValidationFailed("Invalid query parameter", "location is required"))
		c.Abort()
		return
	}
	kind := strings.TrimSpace(c.Query("kind"))
	if kind == "" {
		kind = defaultCoverKind
	}

	c.JSON(http.StatusOK, types.DestinationCover{
		Location: location,
		Kind:     kind,
		Image:    h.photos.CoverImage(c.Request.Context(), location, kind),
	})
}
