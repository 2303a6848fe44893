package middleware

import (
	"github.com/gin-gonic/gin"

	"todos/internal/adapter/http/helper"
	"todos/internal/core/domain"
	"todos/internal/core/port"
	"todos/pkg/auth"
	ct "todos/pkg/context"
)

const userKey = "user"

// Authenticate resolves the bearer token into a user and rejects the request
// with 401 when that fails. Handlers behind it read the user with CurrentUser.
func Authenticate(authService port.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			helper.SendUnauthorizedError(c, err.Error())
			return
		}

		user, err := authService.Resolve(c.Request.Context(), token)
		if err != nil {
			helper.SendServiceError(c, err)
			return
		}

		current := GetCurrent(c)
		current.SetUser(user)
		current.Set("user_id", user.ID.String())

		c.Request = c.Request.WithContext(ct.WithCurrent(c.Request.Context(), current))
		c.Set(userKey, user)

		c.Next()
	}
}

func CurrentUser(c *gin.Context) (domain.User, bool) {
	if value, ok := c.Get(userKey); ok {
		if user, ok := value.(domain.User); ok {
			return user, true
		}
	}

	return ct.UserFromContext(c.Request.Context())
}
