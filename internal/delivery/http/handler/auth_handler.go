package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/usecase/auth"
)

type AuthHandler struct {
	authUseCase *auth.TelegramAuthUseCase
}

func NewAuthHandler(authUseCase *auth.TelegramAuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

// TelegramAuthRequest represents a Telegram login payload
type TelegramAuthRequest struct {
	AuthData map[string]string `json:"auth_data" binding:"required"`
}

// TelegramAuth handles Telegram login-widget authentication
// @Summary Telegram authentication
// @Description Authenticate user via signed Telegram login data
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TelegramAuthRequest true "Telegram auth data"
// @Success 200 {object} auth.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/telegram [post]
func (h *AuthHandler) TelegramAuth(c *gin.Context) {
	var req TelegramAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	resp, err := h.authUseCase.AuthenticateTelegram(c.Request.Context(), req.AuthData)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidToken):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid telegram signature"})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid auth data"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "authentication failed"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
