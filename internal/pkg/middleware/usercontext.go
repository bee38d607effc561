package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/confeitapro/confeitapro/app/controllers"
	"github.com/confeitapro/confeitapro/internal/pkg/session"
	"github.com/confeitapro/confeitapro/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request
// This centralizes user session handling and eliminates code duplication
func UserContextMiddleware(c *fiber.Ctx) error {
	// Get session with error handling
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: set as anonymous user
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
			IsLoggedIn: false,
		})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	// Get user ID from session
	userID := sess.Get(controllers.USER_ID)
	if userID == nil {
		// Anonymous user - no session data
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
			IsLoggedIn: false,
		})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	email, _ := sess.Get(controllers.USER_EMAIL).(string)

	userCtx := usercontext.UserContext{
		UserID:     userID.(uint),
		Email:      email,
		IsLoggedIn: true,
	}
	c.Locals(usercontext.KeyUserContext, userCtx)
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUserID, userID.(uint))
	c.Locals(usercontext.KeyUserEmail, email)

	return c.Next()
}
