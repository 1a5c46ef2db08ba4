package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/harmoniahq/practice-api/internal/auth"
	"github.com/harmoniahq/practice-api/internal/config"
	"github.com/harmoniahq/practice-api/internal/httperr"
	"github.com/harmoniahq/practice-api/internal/httpresp"
	"github.com/harmoniahq/practice-api/internal/middleware"
	"github.com/harmoniahq/practice-api/internal/models"
	"github.com/harmoniahq/practice-api/internal/services"
)

type AuthHandler struct {
	cfg *config.Config
	svc *services.AuthService
}

func NewAuthHandler(cfg *config.Config, svc *services.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, svc: svc}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerResponse struct {
	tokenResponse
	User *models.User `json:"user"`
}

// Register creates a tenant and its owner account, answering with a token
// so the new owner is signed in immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	user, err := h.svc.Register(in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	token, err := auth.IssueToken(h.cfg, user)
	if err != nil {
		httperr.Internal(c, "token_issue_failed", "Could not issue token.")
		return
	}

	httpresp.Created(c, registerResponse{
		tokenResponse: tokenResponse{AccessToken: token, TokenType: "bearer"},
		User:          user,
	})
}

// Login takes form-encoded credentials, the username field carrying the
// email, and answers with a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		httperr.BadRequest(c, "invalid_payload", "username and password are required.")
		return
	}

	user, err := h.svc.Login(email, password)
	if err != nil {
		httperr.From(c, err)
		return
	}

	token, err := auth.IssueToken(h.cfg, user)
	if err != nil {
		httperr.Internal(c, "token_issue_failed", "Could not issue token.")
		return
	}

	httpresp.OK(c, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	httpresp.OK(c, middleware.CurrentUser(c))
}
