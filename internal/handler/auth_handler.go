package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/transit-network-go/internal/config"
	"github.com/jengzang/transit-network-go/internal/middleware"
	"github.com/jengzang/transit-network-go/pkg/response"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// loginRequest is the body of POST /api/v1/auth/login
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Username != h.cfg.AdminUser || req.Password != h.cfg.AdminPass {
		response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := middleware.GenerateToken(h.cfg.JWTSecret, req.Username, 24*time.Hour)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}

	response.Success(c, gin.H{
		"token":    token,
		"username": req.Username,
	})
}
