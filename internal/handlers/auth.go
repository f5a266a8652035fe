package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sallatna/sallatna-backend/internal/pkg/errors"
	"github.com/sallatna/sallatna-backend/internal/requestdata"
	"github.com/sallatna/sallatna-backend/internal/services"
)

// SessionCookieName is the HttpOnly cookie carrying the session token.
const SessionCookieName = "session_token"

type AuthHandler struct {
	authService  services.AuthService
	cookieDomain string
	cookieSecure bool
}

func NewAuthHandler(authService services.AuthService, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
	}
}

func (ah *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(ah.authService.GetAccessTTL().Seconds())
	c.SetCookie(SessionCookieName, token, maxAge, "/", ah.cookieDomain, ah.cookieSecure, true)
}

// POST /api/auth/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	user, token, err := ah.authService.RegisterUser(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	ah.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, user)
}

// POST /api/auth/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	user, token, err := ah.authService.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}

	ah.setSessionCookie(c, token)
	c.JSON(http.StatusOK, user)
}

// POST /api/auth/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", ah.cookieDomain, ah.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/auth/me
func (ah *AuthHandler) Me(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperrors.New(apperrors.ErrUnauthorized, "Not authenticated"))
		return
	}
	user, err := ah.authService.GetUser(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
