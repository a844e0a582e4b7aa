package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ndemidov/tgdating-backend/internal/delivery/http/handler"
	"github.com/ndemidov/tgdating-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler       *handler.AuthHandler
	onboardingHandler *handler.OnboardingHandler
	profileHandler    *handler.ProfileHandler
	feedHandler       *handler.FeedHandler
	swipeHandler      *handler.SwipeHandler
	authMiddleware    *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	onboardingHandler *handler.OnboardingHandler,
	profileHandler *handler.ProfileHandler,
	feedHandler *handler.FeedHandler,
	swipeHandler *handler.SwipeHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:       authHandler,
		onboardingHandler: onboardingHandler,
		profileHandler:    profileHandler,
		feedHandler:       feedHandler,
		swipeHandler:      swipeHandler,
		authMiddleware:    authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		v1.POST("/auth/telegram", r.authHandler.TelegramAuth)

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.POST("/active", r.profileHandler.SetActive)
			}

			// Onboarding routes
			onboarding := protected.Group("/onboarding")
			{
				onboarding.POST("/start", r.onboardingHandler.Start)
				onboarding.POST("/advance", r.onboardingHandler.Advance)
			}

			// Feed routes
			feed := protected.Group("/feed")
			{
				feed.GET("/next", r.feedHandler.GetNextCandidate)
				feed.GET("/liked-me", r.feedHandler.GetLikedMe)
			}

			// Swipe routes
			protected.POST("/swipe", r.swipeHandler.Decide)
			protected.GET("/matches", r.swipeHandler.GetMatches)
		}
	}

	return router
}
