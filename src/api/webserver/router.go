package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bandhall/bandhall/src/api/config"
	"github.com/bandhall/bandhall/src/api/data"
	"github.com/bandhall/bandhall/src/api/governance"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://app.bandhall.org"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	store := data.NewStore(db)
	engine := governance.New(store, data.NewRedisNotifier(rdb))

	authH := NewAuth(store, []byte(cfg.JWTSecret))
	propH := NewProposals(engine)
	voteH := NewVotes(engine)

	limiter := NewRateLimiter(30, time.Minute)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/login", authH.Login)

		secured := v1.Group("")
		secured.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
		{
			secured.GET("/bands/:id/proposals", propH.List)
			secured.GET("/proposals/:id", propH.Get)
			secured.GET("/me/pending-votes", propH.Pending)

			mutating := secured.Group("")
			mutating.Use(RateLimitMiddleware(limiter))
			{
				mutating.POST("/bands/:id/proposals", propH.Create)
				mutating.POST("/proposals/:id/votes", voteH.Cast)
				mutating.POST("/proposals/:id/close", propH.Close)
			}
		}

		admin := v1.Group("/admin")
		admin.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
		{
			adminH := NewAdmin(db)
			admin.POST("/settings/reload", adminH.ReloadSettings)
		}
	}
}
