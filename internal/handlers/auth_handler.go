package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/barberflow/barberflow-server/internal/config"
	"github.com/barberflow/barberflow-server/internal/httperr"
	"github.com/barberflow/barberflow-server/internal/middleware"
)

// AuthHandler troca o PIN do barbeiro por um token de sessão. O PIN não é
// autenticação de verdade — é a trava de conveniência da tela de gerência.
type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

// --------- Requests ---------

type SessionRequest struct {
	Pin string `json:"pin" binding:"required,len=4"`
}

// --------- Handlers ---------

func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "PIN de 4 dígitos obrigatório.")
		return
	}

	if !h.pinMatches(req.Pin) {
		httperr.Unauthorized(c, "invalid_pin", "PIN incorreto.")
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)

	token, err := h.generateToken(expiresAt)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao criar sessão.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"expires_at": expiresAt.Unix(),
	})
}

func (h *AuthHandler) pinMatches(pin string) bool {
	if h.config.AdminPINHash != "" {
		return bcrypt.CompareHashAndPassword(
			[]byte(h.config.AdminPINHash),
			[]byte(pin),
		) == nil
	}

	return subtle.ConstantTimeCompare(
		[]byte(h.config.AdminPIN),
		[]byte(pin),
	) == 1
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"role": middleware.RoleBarber,
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
