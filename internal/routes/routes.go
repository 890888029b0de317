package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"plasco-inventory/internal/auth"
	"plasco-inventory/internal/cache"
	"plasco-inventory/internal/config"
	"plasco-inventory/internal/handlers"
	"plasco-inventory/internal/repository"
)

// RegisterRoutes wires repositories, handlers and the auth gate onto
// the router. Every catalog endpoint, toys included, sits behind the
// session middleware.
func RegisterRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	listCache := cache.New(2*time.Minute, 16)

	productHandler := handlers.NewProductHandler(
		repository.NewProductRepository(db.Collection("products")), listCache)
	toyHandler := handlers.NewToyHandler(
		repository.NewToyRepository(db.Collection("toys")), listCache)

	verifier := &auth.EnvVerifier{
		Name:     cfg.OperatorName,
		Username: cfg.OperatorUsername,
		Password: cfg.OperatorPassword,
	}
	authHandler := auth.NewHandler(verifier, cfg.AuthSecret, cfg.SecureCookies)

	api := router.Group("/api")

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/register", authHandler.Register)

	protected := api.Group("")
	protected.Use(auth.Middleware(cfg.AuthSecret))

	protected.GET("/auth/me", authHandler.Me)

	products := protected.Group("/products")
	{
		products.GET("", productHandler.List)
		products.POST("", productHandler.Create)
		products.GET("/export", productHandler.Export)
		products.DELETE("/bulk-delete", productHandler.BulkDelete)
		products.GET("/:id", productHandler.Get)
		products.PUT("/:id", productHandler.Update)
		products.DELETE("/:id", productHandler.Delete)
	}

	toys := protected.Group("/toys")
	{
		toys.GET("", toyHandler.List)
		toys.POST("", toyHandler.Create)
		toys.DELETE("/bulk-delete", toyHandler.BulkDelete)
		toys.GET("/:id", toyHandler.Get)
		toys.PUT("/:id", toyHandler.Update)
		toys.DELETE("/:id", toyHandler.Delete)
	}
}
