package handlers

import (
	"net/http"
	"strconv"

	apperrors "github.com/NomadCrew/nomad-crew-itinerary/errors"
	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/NomadCrew/nomad-crew-itinerary/middleware"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ItineraryHandler struct {
	service ItineraryServiceInterface
	log     *zap.SugaredLogger
}

func NewItineraryHandler(service ItineraryServiceInterface) *ItineraryHandler {
	return &ItineraryHandler{
		service: service,
		log:     logger.GetLogger().Named("itinerary-handler"),
	}
}

// GenerateItineraryHandler godoc
// @Summary Generate an itinerary
// @Description Generates a day-by-day itinerary with activity photos. The call blocks until the model answers. When X-Owner-ID is sent the result is saved to history.
// @Tags itineraries
// @Accept json
// @Produce json
// @Param X-Owner-ID header string false "Owner id used for history"
// @Param request body types.TravelRequest true "Travel request"
// @Success 200 {object} types.GeneratedItinerary
// @Failure 400 {object} types.ErrorResponse "Invalid travel request"
// @Failure 429 {object} types.ErrorResponse "Rate limit exceeded"
// @Failure 502 {object} types.ErrorResponse "Generation failed, retry"
// @Router /v1/itineraries [post]
func (h *ItineraryHandler) GenerateItineraryHandler(c *gin.Context) {
	var req types.TravelRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	res, err := h.service.Generate(c.Request.Context(), middleware.OwnerID(c), req)
	if err != nil {
		abortWithError(c, err, "Itinerary", "")
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListHistoryHandler godoc
// @Summary List saved itineraries
// @Description Returns the caller's saved itineraries, newest first.
// @Tags history
// @Produce json
// @Param X-Owner-ID header string true "Owner id"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Items to skip"
// @Success 200 {object} types.HistoryPage
// @Failure 400 {object} types.ErrorResponse "Missing owner or bad paging"
// @Router /v1/itineraries/history [get]
func (h *ItineraryHandler) ListHistoryHandler(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}

	page, err := h.service.History(c.Request.Context(), middleware.OwnerID(c), limit, offset)
	if err != nil {
		abortWithError(c, err, "History", "")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetHistoryHandler godoc
// @Summary Get a saved itinerary
// @Tags history
// @Produce json
// @Param X-Owner-ID header string true "Owner id"
// @Param id path string true "Itinerary id"
// @Success 200 {object} types.ItineraryRecord
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Router /v1/itineraries/history/{id} [get]
func (h *ItineraryHandler) GetHistoryHandler(c *gin.Context) {
	id := c.Param("id")
	rec, err := h.service.Get(c.Request.Context(), middleware.OwnerID(c), id)
	if err != nil {
		abortWithError(c, err, "Itinerary", id)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DeleteHistoryHandler godoc
// @Summary Delete a saved itinerary
// @Tags history
// @Param X-Owner-ID header string true "Owner id"
// @Param id path string true "Itinerary id"
// @Success 204
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Router /v1/itineraries/history/{id} [delete]
func (h *ItineraryHandler) DeleteHistoryHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), middleware.OwnerID(c), id); err != nil {
		abortWithError(c, err, "Itinerary", id)
		return
	}
	c.Status(http.StatusNoContent)
}

// queryInt reads an optional integer query parameter. On a malformed value
// it records a validation error and returns false.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid query parameter", name+" must be an integer"))
		c.Abort()
		return 0, false
	}
	return v, true
}
