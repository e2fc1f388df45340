package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/guc1/A-Piece-Of-Cake-sub000/config"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/api"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/middleware"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/service"
)

// Setup wires services, handlers and middleware into the application
// router. rdb and s3cfg may be nil; the plan cache, rate limiting and S3
// icon storage are then disabled.
func Setup(db *gorm.DB, rdb *redis.Client, s3cfg *config.S3Config, jwtSecret string) *gin.Engine {
	authService := service.NewAuthService(db, jwtSecret)
	flavorService := service.NewFlavorService(db)
	ingredientService := service.NewIngredientService(db)
	planService := service.NewPlanService(db, rdb)
	snapshotService := service.NewSnapshotService(db, flavorService)
	socialService := service.NewSocialService(db)

	var s3Client service.S3Client
	bucket := ""
	if s3cfg != nil {
		s3Client = s3cfg.Client
		bucket = s3cfg.BucketName
	}
	iconService := service.NewIconService(db, s3Client, bucket)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")

	api.NewAuthHandler(authService).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		api.NewAccountHandler(authService).RegisterRoutes(protected)
		api.NewFlavorHandler(flavorService).RegisterRoutes(protected)
		api.NewIngredientHandler(ingredientService, authService).RegisterRoutes(protected)
		api.NewSnapshotHandler(snapshotService, authService).RegisterRoutes(protected)
		api.NewSocialHandler(socialService).RegisterRoutes(protected)
		api.NewIconHandler(iconService).RegisterRoutes(protected)
		api.NewViewerHandler(authService, flavorService, ingredientService,
			planService, snapshotService, socialService, iconService).RegisterRoutes(protected)

		plans := protected.Group("")
		if rdb != nil {
			plans.Use(middleware.NewPlanSaveRateLimiter(rdb).Middleware())
		}
		api.NewPlanHandler(planService, authService).RegisterRoutes(plans)
	}

	return router
}
