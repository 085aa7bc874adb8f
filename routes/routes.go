package routes

import (
	"recipe-market-api/handlers"
	"recipe-market-api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything SetupRoutes wires into the engine.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Orders  *handlers.OrderHandler
	Reviews *handlers.ReviewHandler
	Catalog *handlers.CatalogHandler
	Recipes *handlers.RecipeHandler
	Admin   *handlers.AdminHandler
}

// SetupRoutes registers all routes. Mutating order/review/recipe routes
// sit behind the authenticator; the admin group additionally requires an
// admin principal.
func SetupRoutes(r *gin.Engine, h Handlers, auth middleware.Authenticator) {
	// ── Public routes ──────────────────────────────────────────────
	r.POST("/signup", h.Auth.Signup)
	r.POST("/login", h.Auth.Login)
	r.PUT("/api/password-reset", h.Auth.ResetPassword)
	r.GET("/api/recipes", h.Catalog.GetPublicFeed)

	// ── Authenticated routes ───────────────────────────────────────
	authed := r.Group("/")
	authed.Use(middleware.AuthRequired(auth))
	{
		authed.POST("/api/orders", h.Orders.PlaceOrder)
		authed.GET("/api/orders/:userId", h.Orders.GetOrderHistory)
		authed.POST("/api/reviews", h.Reviews.PostReview)

		// Restaurant recipe management
		authed.GET("/recipes/:userId", h.Recipes.ListByOwner)
		authed.POST("/recipes", h.Recipes.Create)
		authed.PUT("/recipes/:recipeId", h.Recipes.Update)
		authed.DELETE("/recipes/:recipeId", h.Recipes.Delete)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(auth), middleware.AdminRequired())
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)
		admin.PUT("/users/:id/status", h.Admin.UpdateStatus)
		admin.PUT("/users/:id/type", h.Admin.UpdateType)
	}
}
