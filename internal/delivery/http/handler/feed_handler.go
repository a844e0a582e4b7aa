package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

// GetNextCandidate handles GET /feed/next. An exhausted queue is a
// normal response with a null profile, not an error.
func (h *FeedHandler) GetNextCandidate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	candidate, err := h.feedUseCase.NextCandidate(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get next candidate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": candidate})
}

// GetLikedMe handles GET /feed/liked-me
func (h *FeedHandler) GetLikedMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	profiles, err := h.feedUseCase.CandidatesWhoLikedMe(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get likes"})
		return
	}
	if profiles == nil {
		profiles = []*domain.Profile{}
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}
