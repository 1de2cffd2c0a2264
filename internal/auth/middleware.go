package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/librarium/bibliotheque/internal/config"
	"github.com/librarium/bibliotheque/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
	ContextKeyRole     = "auth_role"
)

// DefaultUserID is used when authentication is disabled.
const DefaultUserID = uint(0)

// Middleware handles authentication for HTTP requests.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	config         config.Auth
	publicPaths    map[string]bool
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager, cfg config.Auth) *Middleware {
	// /api/auth/csrf is public so a client can fetch the token it
	// needs before POSTing /login.
	publicPaths := map[string]bool{
		"/health":        true,
		"/ping":          true,
		"/login":         true,
		"/api/auth/csrf": true,
	}

	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		config:         cfg,
		publicPaths:    publicPaths,
	}
}

// Handler returns a Gin middleware handler that authenticates requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	if m.config.Mode == config.AuthModeNone {
		return m.noAuthHandler()
	}
	return m.authHandler()
}

// noAuthHandler injects DefaultUserID for all requests when auth is disabled.
func (m *Middleware) noAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyUserID, DefaultUserID)
		c.Next()
	}
}

// authHandler handles authentication when auth is enabled.
func (m *Middleware) authHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.publicPaths[c.Request.URL.Path] {
			c.Set(ContextKeyUserID, DefaultUserID)
			c.Next()
			return
		}

		if user := m.trySessionAuth(c); user != nil {
			c.Set(ContextKeyUserID, user.ID)
			c.Set(ContextKeyUsername, user.Username)
			c.Set(ContextKeyRole, user.Role)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "authentication required",
		})
	}
}

// trySessionAuth attempts to authenticate using the session cookie.
func (m *Middleware) trySessionAuth(c *gin.Context) *entities.User {
	if m.sessionManager == nil {
		return nil
	}

	userID := m.sessionManager.GetUserID(c.Request)
	if userID == 0 {
		return nil
	}

	user, err := m.service.GetUserByID(userID)
	if err != nil {
		return nil
	}

	return user
}

// RequireRole returns a middleware that requires one of the given roles.
func (m *Middleware) RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	roleSet := make(map[entities.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		// Skip role check if auth is disabled
		if m.config.Mode == config.AuthModeNone {
			c.Next()
			return
		}

		if !roleSet[GetUserRole(c)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns DefaultUserID (0) if not authenticated or auth is disabled.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return DefaultUserID
}

// GetUsername retrieves the authenticated user's username from the context.
func GetUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		if username, ok := name.(string); ok {
			return username
		}
	}
	return ""
}

// GetUserRole retrieves the authenticated user's role from the context.
func GetUserRole(c *gin.Context) entities.UserRole {
	if r, exists := c.Get(ContextKeyRole); exists {
		if role, ok := r.(entities.UserRole); ok {
			return role
		}
	}
	return ""
}
