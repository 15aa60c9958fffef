package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gorgui02/rental-management-backend/internal/auditlog"
	"github.com/gorgui02/rental-management-backend/internal/user"
)

const cookieName = "auth_token"

type Handler struct {
	svc      Service
	auditSvc auditlog.Service
	ttlHours int
}

func NewHandler(svc Service, auditSvc auditlog.Service, ttlHours int) *Handler {
	return &Handler{svc: svc, auditSvc: auditSvc, ttlHours: ttlHours}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth: validates credentials, issues a token and sets
// the session cookie the UI relies on.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	token, u, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		h.auditSvc.LogAction(c.Request.Context(), nil, "LOGIN_FAILED",
			map[string]interface{}{"username": req.Username}, c.ClientIP(), "failure")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	h.auditSvc.LogAction(c.Request.Context(), &u.ID, "LOGIN",
		map[string]interface{}{"username": u.Username}, c.ClientIP(), "success")

	c.SetCookie(cookieName, token, h.ttlHours*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"user":  sanitize(u),
		"token": token,
	})
}

// Session handles GET /auth: reports whether the caller holds a live session.
func (h *Handler) Session(c *gin.Context) {
	token := TokenFromRequest(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	u, err := h.svc.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.SetCookie(cookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          sanitize(u),
	})
}

// Logout handles DELETE /auth: revokes the session and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if token := TokenFromRequest(c); token != "" {
		_ = h.svc.Logout(token)
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func sanitize(u *user.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
	}
}

// TokenFromRequest pulls the session token from the auth cookie, falling
// back to a Bearer header for non-browser clients.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 && header[:7] == "Bearer " {
		return header[7:]
	}
	return ""
}
