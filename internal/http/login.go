package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/librarium/bibliotheque/internal/audit"
	"github.com/librarium/bibliotheque/internal/auth"
)

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful sign-in.
type LoginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AuthController struct {
	service  *auth.Service
	sessions *auth.SessionManager
	auditor  *audit.Service
}

func NewAuthController(service *auth.Service, sessions *auth.SessionManager, auditor *audit.Service) *AuthController {
	return &AuthController{
		service:  service,
		sessions: sessions,
		auditor:  auditor,
	}
}

// Login verifies credentials and starts a session. Invalid credentials
// always yield the same 401 body.
func (controller *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := controller.service.Authenticate(req.Username, req.Password)
	controller.auditor.LogAuth("login", req.Username, err == nil)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}

	if err := controller.sessions.CreateSession(c.Request, user); err != nil {
		respondInternalError(c, err, "create session")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Username: user.Username,
		Role:     string(user.Role),
	})
}

// Logout destroys the current session.
func (controller *AuthController) Logout(c *gin.Context) {
	username := auth.GetUsername(c)
	if err := controller.sessions.DestroySession(c.Request); err != nil {
		respondInternalError(c, err, "destroy session")
		return
	}
	controller.auditor.LogAuth("logout", username, true)
	respondSuccess(c, "logged out")
}

// CSRFToken returns the token a client must echo back on mutating
// requests when auth is enabled.
func (controller *AuthController) CSRFToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"csrf_token": auth.GetCSRFToken(c)})
}
