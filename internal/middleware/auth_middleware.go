package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/pkg/auth"
	"github.com/makerere/aits/internal/pkg/logger"
)

// Context keys set by the auth middleware
const (
	ContextUserKey   = "currentUser"
	ContextUserIDKey = "userID"
)

// UserLoader resolves the authenticated user record from a token's
// user ID
type UserLoader interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// JWTAuth validates the bearer token and loads the authenticated user
// into the request context
func JWTAuth(jwtService *auth.JWTService, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, "Authorization header missing or malformed")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			logger.Warn().Err(err).Int64("userID", claims.UserID).Msg("Token subject no longer exists")
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(401, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message)))
}

// CurrentUser returns the authenticated user stored by JWTAuth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
