package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EngOsamaQazan/Archeef/config"
	"github.com/EngOsamaQazan/Archeef/internal/api/handler"
	"github.com/EngOsamaQazan/Archeef/internal/api/middleware"
	"github.com/EngOsamaQazan/Archeef/pkg/jwt"
	"github.com/EngOsamaQazan/Archeef/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, db *gorm.DB, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── Health check ──
	r.GET("/health", healthHandler(db, rdb))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Auth (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(rdb, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow),
				h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// Auth (session)
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/accounts/:id/confirm", middleware.RequirePermission("admin"), h.Auth.ConfirmEmail)
			authorized.PUT("/auth/users/:id/role", middleware.RequirePermission("admin"), h.Auth.UpdateRole)

			// Dashboard
			authorized.GET("/dashboard", middleware.RequirePermission("read"), h.Dashboard.Summary)

			// Employees
			employees := authorized.Group("/employees")
			{
				employees.GET("", middleware.RequirePermission("read"), h.Employee.List)
				employees.POST("", middleware.RequirePermission("admin"), h.Employee.Create)
			}

			// Contracts
			contracts := authorized.Group("/contracts")
			{
				contracts.GET("", middleware.RequirePermission("read"), h.Contract.List)
				contracts.GET("/search", middleware.RequirePermission("read"), h.Contract.Search)
			}

			// Transfers
			transactions := authorized.Group("/transactions")
			{
				transactions.POST("", middleware.RequirePermission("write"), h.Transaction.Create)
				transactions.GET("", middleware.RequirePermission("read"), h.Transaction.List)
				transactions.GET("/recent", middleware.RequirePermission("read"), h.Transaction.Recent)
				transactions.GET("/:id", middleware.RequirePermission("read"), h.Transaction.GetByID)
			}

			// Reports
			authorized.GET("/reports", middleware.RequirePermission("read"), h.Report.Generate)

			// Exports
			export := authorized.Group("/export")
			export.Use(middleware.RequirePermission("read"))
			{
				export.GET("/transactions", h.Export.Transactions)
				export.GET("/contracts", h.Export.Contracts)
				export.GET("/report", h.Export.Report)
			}
		}
	}

	return r
}

// healthHandler reports liveness plus the state of both backing stores.
// The process is considered live even when a dependency is down; callers
// inspect the per-dependency fields.
func healthHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "down"
		}

		redisStatus := "ok"
		if rdb == nil {
			redisStatus = "disabled"
		} else if rdb.Ping(ctx) != nil {
			redisStatus = "down"
		}

		c.JSON(200, gin.H{
			"status": "ok",
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
