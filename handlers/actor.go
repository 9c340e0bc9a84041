package handlers

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// Identity headers set by the upstream gateway after authentication
const (
	HeaderAccountID   = "X-Account-ID"
	HeaderWorkspaceID = "X-Workspace-ID"
	HeaderRole        = "X-Actor-Role"
	HeaderManagerID   = "X-Manager-ID"
	HeaderAdminKey    = "X-Admin-Key"

	actorKey = "actor"
)

// ActorMiddleware resolves the caller from the gateway headers
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.Role(strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderRole))))
		if role == "" {
			role = models.RoleOwner
		}

		actor, err := handlerServices.WorkspaceService.ResolveActor(c.Request.Context(),
			strings.TrimSpace(c.GetHeader(HeaderAccountID)),
			strings.TrimSpace(c.GetHeader(HeaderWorkspaceID)),
			role,
			strings.TrimSpace(c.GetHeader(HeaderManagerID)),
		)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireWorkspace rejects requests whose actor has no workspace selected
func RequireWorkspace() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentActor(c).WorkspaceID == "" {
			utils.HandleError(c, utils.NewBadRequestError(HeaderWorkspaceID+" header is required"))
			return
		}
		c.Next()
	}
}

// AdminKeyMiddleware guards administrative routes with a shared key.
// An empty key disables the routes.
func AdminKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		given := c.GetHeader(HeaderAdminKey)
		if key == "" || subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			utils.HandleError(c, utils.NewUnauthorizedError("Invalid admin key"))
			return
		}
		c.Next()
	}
}

func currentActor(c *gin.Context) models.Actor {
	if value, ok := c.Get(actorKey); ok {
		if actor, ok := value.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{}
}
