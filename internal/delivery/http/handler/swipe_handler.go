package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/usecase/swipe"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase) *SwipeHandler {
	return &SwipeHandler{
		swipeUseCase: swipeUseCase,
	}
}

// DecideRequest represents a swipe action
type DecideRequest struct {
	ToUserID int64 `json:"to_user_id" binding:"required"`
	IsLike   bool  `json:"is_like"`
}

// Decide handles POST /swipe
// @Summary Record a swipe decision
// @Description Record like/dislike, detect mutual like, return the next candidate
// @Tags swipe
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body DecideRequest true "Swipe data"
// @Success 200 {object} swipe.DecideResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /swipe [post]
func (h *SwipeHandler) Decide(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.swipeUseCase.Decide(c.Request.Context(), userID, req.ToUserID, req.IsLike)
	if err != nil {
		if errors.Is(err, domain.ErrCannotDecideSelf) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot swipe your own profile"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to record decision"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMatches handles GET /matches
func (h *SwipeHandler) GetMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	matches, err := h.swipeUseCase.Matches(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
