package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/care-scheduler/internal/config"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
)

type AuthHandler struct {
	config *config.Config
	log    *zap.Logger
}

func NewAuthHandler(cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{config: cfg, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	ChatID     int64  `json:"chat_id" binding:"required"`
	Passphrase string `json:"passphrase" binding:"required"`
}

// --------- Handlers ---------

// Login issues an operator token. Only chat ids in ADMIN_IDS may log in, all
// with the shared operator passphrase.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if h.config.OperatorPasswordHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "operator_login_disabled"})
		return
	}

	if !h.config.IsAdmin(req.ChatID) {
		h.log.Warn("operator login refused", zap.Int64("chat_id", req.ChatID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.config.OperatorPasswordHash), []byte(req.Passphrase)); err != nil {
		h.log.Warn("operator login refused", zap.Int64("chat_id", req.ChatID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := middleware.OperatorToken(h.config, req.ChatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"operator_id": req.ChatID,
		"token":       token,
		"expires_in":  int(h.config.TokenTTL.Seconds()),
	})
}
