package handlers

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/NomadCrew/nomad-crew-itinerary/errors"
	"github.com/NomadCrew/nomad-crew-itinerary/internal/planner"
	"github.com/NomadCrew/nomad-crew-itinerary/services"
	"github.com/NomadCrew/nomad-crew-itinerary/store"
	"github.com/gin-gonic/gin"
)

// abortWithError maps a service error to an AppError and hands it to the
// error middleware.
func abortWithError(c *gin.Context, err error, entity, id string) {
	_ = c.Error(toAppError(err, entity, id))
	c.Abort()
}

func toAppError(err error, entity, id string) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var pce *planner.PromptConstructionError
	if errors.As(err, &pce) {
		return apperrors.ValidationFailed("Invalid travel request", fmt.Sprintf("%s: %s", pce.Field, pce.Reason))
	}

	var ge *planner.GenerationError
	if errors.As(err, &ge) {
		out := apperrors.GenerationFailed(err)
		out.Detail = fmt.Sprintf("generation failed at %s stage", ge.Stage)
		if errors.Is(err, context.DeadlineExceeded) {
			out.Detail = "the language model did not answer in time"
		}
		return out
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperrors.NotFound(entity, id)
	case errors.Is(err, services.ErrQueueFull):
		return apperrors.ServiceUnavailable("Generation queue is full", "please retry in a moment")
	case errors.Is(err, services.ErrPoolStopped):
		return apperrors.ServiceUnavailable("Service is shutting down", "please retry in a moment")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.GenerationFailed(err)
	}
	return apperrors.Wrap(err, apperrors.ServerError, "Internal Server Error")
}

// bindJSONOrError binds the body and records a validation error on failure.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request payload", err.Error()))
		c.Abort()
		return false
	}
	return true
}
