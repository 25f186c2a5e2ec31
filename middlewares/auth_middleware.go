package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/utils"
)

var (
	errMissingToken = errors.New("Authorization header missing")
	errBadToken     = errors.New("Invalid or expired token")
	errNoSession    = errors.New("Session has ended, please log in again")
)

// AuthMiddleware accepts a Bearer token issued by the login endpoint. The
// token must belong to the user of the persisted session, so logging out
// invalidates it.
func AuthMiddleware(store *services.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errMissingToken)
			c.Abort()
			return
		}
		authorize(c, store, strings.TrimPrefix(authHeader, "Bearer "))
	}
}

func authorize(c *gin.Context, store *services.Store, tokenString string) {
	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errBadToken)
		c.Abort()
		return
	}

	current, err := store.CurrentUser(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to check session"))
		c.Abort()
		return
	}
	if current == nil || current.ID != claims.UserID {
		utils.RespondError(c, http.StatusUnauthorized, errNoSession)
		c.Abort()
		return
	}

	c.Set("user_id", current.ID)
	c.Set("user_name", current.Name)
	c.Set("role", current.Role)
	c.Next()
}
