package middleware

import (
	"strings"

	apperrors "github.com/NomadCrew/nomad-crew-itinerary/errors"
	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/gin-gonic/gin"
)

// OwnerIDHeader identifies the caller whose itineraries are saved and listed.
// Identity is asserted by the upstream gateway; this service does not
// authenticate it.
const OwnerIDHeader = "X-Owner-ID"

const maxOwnerIDLength = 128

// OwnerIDMiddleware copies the owner header into the gin context when present.
func OwnerIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := strings.TrimSpace(c.GetHeader(OwnerIDHeader))
		if ownerID == "" {
			c.Next()
			return
		}
		if len(ownerID) > maxOwnerIDLength {
			_ = c.Error(apperrors.ValidationFailed("Invalid owner id", "X-Owner-ID is too long"))
			c.Abort()
			return
		}
		c.Set(logger.OwnerIDKey, ownerID)
		c.Next()
	}
}

// RequireOwner rejects requests that did not carry an owner id.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(logger.OwnerIDKey) == "" {
			_ = c.Error(apperrors.ValidationFailed("Owner id required", "send the X-Owner-ID header"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// OwnerID returns the owner set by OwnerIDMiddleware, or "".
func OwnerID(c *gin.Context) string {
	return c.GetString(logger.OwnerIDKey)
}
