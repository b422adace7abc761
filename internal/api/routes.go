package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"keycrypt-backend/internal/core"
	"keycrypt-backend/internal/middleware"
)

// Services bundles everything the routes need.
type Services struct {
	Credentials core.CredentialService
	Activities  core.ActivityService
	Compromised core.CompromisedService
	Features    core.FeatureService
	Strength    StrengthPredictor
}

// SetupRoutes wires all endpoints. Global middleware (request id, logging,
// recovery, CORS) is applied to the router before this is called; every
// /api/v1 route runs behind token verification.
func SetupRoutes(router *gin.Engine, authMW *middleware.AuthMiddleware, services Services, logger *zap.Logger) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	credentialHandler := NewCredentialHandler(services.Credentials, logger)
	activityHandler := NewActivityHandler(services.Activities, logger)
	compromisedHandler := NewCompromisedHandler(services.Compromised, logger)
	featureHandler := NewFeatureHandler(services.Features, logger)
	importHandler := NewImportHandler(services.Activities, logger)

	apiV1 := router.Group("/api/v1", authMW.VerifyToken())
	{
		credentials := apiV1.Group("/credentials")
		{
			credentials.POST("", credentialHandler.Create)
			credentials.POST("/bulk", credentialHandler.CreateBulk)
			credentials.GET("", credentialHandler.List)
			credentials.PUT("/:credentialId", credentialHandler.Replace)
			credentials.DELETE("/:credentialId", credentialHandler.Delete)

			activities := credentials.Group("/:credentialId/activities")
			{
				activities.POST("", activityHandler.CreateBulk)
				activities.GET("", activityHandler.List)
				activities.PUT("/:activityId", activityHandler.Update)
			}
		}

		compromised := apiV1.Group("/compromised")
		{
			compromised.POST("", compromisedHandler.CreateBulk)
			compromised.GET("", compromisedHandler.List)
			compromised.PUT("/:entryId", compromisedHandler.Update)
		}

		apiV1.POST("/password-features", featureHandler.Report)
		apiV1.POST("/imports/activities", importHandler.ImportActivities)

		if services.Strength != nil {
			strengthHandler := NewStrengthHandler(services.Strength, logger)
			apiV1.POST("/password-strength", strengthHandler.Predict)
		}
	}
}
