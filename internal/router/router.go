// Package router builds the route table: it wires services into handlers
// and declares which routes run behind the identity-resolution middleware.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chirpsocial/backend/config"
	"github.com/chirpsocial/backend/internal/api"
	"github.com/chirpsocial/backend/internal/middleware"
	"github.com/chirpsocial/backend/internal/service"
)

// Setup wires services, handlers and middleware into a gin engine.
// redisClient may be nil; post-creation rate limiting is then disabled.
func Setup(db *gorm.DB, cfg *config.Config, redisClient *redis.Client, log zerolog.Logger) *gin.Engine {
	authService := service.NewAuthService(cfg.JWTSecret)
	userService := service.NewUserService(db, cfg.BcryptCost)
	followService := service.NewFollowService(db)
	postService := service.NewPostService(db)
	feedService := service.NewFeedService(db, cfg.SearchLanguage)

	userHandler := api.NewUserHandler(userService, authService)
	followHandler := api.NewFollowHandler(followService, feedService)
	messageHandler := api.NewMessageHandler(postService, feedService)

	authRequired := middleware.Auth(authService)
	postLimiter := middleware.NewPostCreationRateLimiter(redisClient)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Metrics())
	router.Use(cors.Default())

	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "API running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")

	users := apiGroup.Group("/users")
	{
		users.POST("", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.GET("/:id", userHandler.Get)
		users.DELETE("/:id", authRequired, userHandler.Delete)
	}

	follows := apiGroup.Group("/follows")
	follows.Use(authRequired)
	{
		follows.POST("", followHandler.Create)
		follows.DELETE("", followHandler.Delete)
		follows.GET("/feed", followHandler.Feed)
		follows.GET("/following", followHandler.Following)
		follows.GET("/followers", followHandler.Followers)
		follows.GET("/:id/following", followHandler.FollowingOf)
		follows.GET("/:id/followers", followHandler.FollowersOf)
	}

	messages := apiGroup.Group("/messages")
	{
		messages.POST("", authRequired, postLimiter.Middleware(), messageHandler.Create)
		messages.GET("/all", messageHandler.All)
		messages.GET("/latest", messageHandler.Latest)
		messages.GET("/feed", authRequired, messageHandler.Feed)
		messages.GET("/user/:id", messageHandler.ByUser)
		messages.GET("/search/:term", messageHandler.Search)
		messages.GET("/:id/likes", messageHandler.Likes)
		messages.POST("/:id/like", authRequired, messageHandler.Like)
		messages.DELETE("/:id/like", authRequired, messageHandler.Unlike)
	}

	return router
}
