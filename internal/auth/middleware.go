package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ownerKey = "pennywise-owner"

type errorResponse struct {
	Error string `json:"error"`
}

// Middleware rejects requests without a valid access token and stores the
// user ID for Owner.
func Middleware(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "authentication credentials were not provided"})
			return
		}

		id, err := m.ParseAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}

		c.Set(ownerKey, id)
		c.Next()
	}
}

// Owner returns the ID of the authenticated user.
func Owner(c *gin.Context) uuid.UUID {
	id, _ := c.Get(ownerKey)
	owner, _ := id.(uuid.UUID)
	return owner
}
