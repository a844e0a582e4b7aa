package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/usecase/onboarding"
)

type OnboardingHandler struct {
	onboardingUseCase *onboarding.OnboardingUseCase
}

func NewOnboardingHandler(onboardingUseCase *onboarding.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingUseCase: onboardingUseCase,
	}
}

// AdvanceRequest carries one answer of the questionnaire. At the photo
// step the input is the transport layer's opaque media reference. An
// empty input is a legal answer; the state machine re-prompts for it.
type AdvanceRequest struct {
	Input string `json:"input"`
}

// Start handles POST /onboarding/start
func (h *OnboardingHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	result, err := h.onboardingUseCase.Start(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to start onboarding"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Advance handles POST /onboarding/advance
// @Summary Advance onboarding
// @Description Feed one answer into the questionnaire state machine
// @Tags onboarding
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body AdvanceRequest true "Questionnaire input"
// @Success 200 {object} onboarding.StepResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /onboarding/advance [post]
func (h *OnboardingHandler) Advance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.onboardingUseCase.Advance(c.Request.Context(), userID, req.Input)
	if err != nil {
		if ve, ok := domain.IsValidation(err); ok {
			// Recoverable: same state, re-prompt.
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "validation",
				"prompt": ve.Prompt,
			})
			return
		}
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "no active session"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to advance onboarding"})
		return
	}

	c.JSON(http.StatusOK, result)
}
