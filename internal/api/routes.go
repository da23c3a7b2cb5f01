package api

import (
	"net/http"
	"time"

	"treinoapp/fitness-tracker/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers under /api/v1.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	allowedOrigins []string,
	authService service.AuthService,
	profileService service.ProfileService,
	onboardingService service.OnboardingService,
	workoutService service.WorkoutService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService, onboardingService)
	workoutHandler := NewWorkoutHandler(workoutService)

	router.Use(RequestIDMiddleware())
	router.Use(corsMiddleware(allowedOrigins))

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		// The catalog is public static data.
		apiV1.GET("/catalog", GetCatalog)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("/onboarding", profileHandler.CompleteOnboarding)
			profileGroup.POST("/photo", profileHandler.UploadPhoto)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
		}
	}
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		// The mobile client ships with no fixed origin; without an
		// explicit list every origin is allowed.
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	return cors.New(corsConfig)
}
