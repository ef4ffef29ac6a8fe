// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/domain/notification"
	"github.com/your-org/storefront-gateway/internal/domain/order"
	"github.com/your-org/storefront-gateway/internal/domain/product"
	"github.com/your-org/storefront-gateway/internal/domain/review"
	"github.com/your-org/storefront-gateway/internal/domain/search"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/domain/wishlist"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// Services carries the shared domain services. Cart and checkout must share
// one instance: the orchestrator reads the same observed cart the cart
// endpoints maintain.
type Services struct {
	Commerce      *backend.Client
	Engagement    *backend.Client
	Session       *session.Service
	Cart          *cart.Service
	Orders        *order.Service
	Checkout      *checkout.Service
	Products      *product.Service
	Reviews       *review.Service
	Wishlist      *wishlist.Service
	Notifications *notification.Service
	Search        *search.Service
}

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	setupCatalogRoutes(rg, svcs, cfg)
	setupAccountRoutes(rg, svcs, cfg)
	setupCartRoutes(rg, svcs, cfg)
	setupCheckoutRoutes(rg, svcs, cfg)
	setupOrderRoutes(rg, svcs, cfg)
	setupEngagementRoutes(rg, svcs, cfg)
}

// setupCatalogRoutes sets up public catalog routes
func setupCatalogRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(svcs.Products, cfg)
	reviewHandler := handlers.NewReviewHandler(svcs.Reviews, cfg)
	searchHandler := handlers.NewSearchHandler(svcs.Search, cfg)

	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/featured", productHandler.GetFeaturedProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/reviews", reviewHandler.GetProductReviews)
		products.GET("/:id/reviews/stats", reviewHandler.GetProductReviewStats)
	}

	rg.GET("/categories", productHandler.GetCategories)

	searchGroup := rg.Group("/search")
	{
		searchGroup.GET("", searchHandler.Search)
		searchGroup.GET("/suggestions", searchHandler.GetSuggestions)
		searchGroup.GET("/trending", searchHandler.GetTrending)
	}
}

// setupAccountRoutes sets up profile routes
func setupAccountRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	profileHandler := handlers.NewProfileHandler(svcs.Session, cfg)

	auth := rg.Group("/auth")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/me", profileHandler.GetProfile)
		auth.GET("/identity", profileHandler.GetIdentity)
	}
}

// setupCartRoutes sets up cart routes
func setupCartRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(svcs.Cart, cfg)

	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.AuthMiddleware(cfg))
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveCartItem)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

// setupCheckoutRoutes sets up checkout and payment configuration routes
func setupCheckoutRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(svcs.Checkout, cfg)
	paymentHandler := handlers.NewPaymentHandler(svcs.Commerce, cfg)

	checkoutGroup := rg.Group("/checkout")
	checkoutGroup.Use(middleware.AuthMiddleware(cfg))
	{
		checkoutGroup.POST("", checkoutHandler.PlaceOrder)
		checkoutGroup.GET("/estimate", checkoutHandler.GetEstimate)
		checkoutGroup.POST("/card", checkoutHandler.MountCard)
		checkoutGroup.PUT("/card", checkoutHandler.ChangeCard)
		checkoutGroup.DELETE("/card", checkoutHandler.UnmountCard)
	}

	payment := rg.Group("/payment")
	payment.Use(middleware.AuthMiddleware(cfg))
	{
		payment.GET("/config", paymentHandler.GetConfig)
	}
}

// setupOrderRoutes sets up order routes
func setupOrderRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(svcs.Orders, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/cancel", orderHandler.CancelOrder)
	}
}

// setupEngagementRoutes sets up wishlist, review and notification routes
func setupEngagementRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	wishlistHandler := handlers.NewWishlistHandler(svcs.Wishlist, cfg)
	reviewHandler := handlers.NewReviewHandler(svcs.Reviews, cfg)
	notificationHandler := handlers.NewNotificationHandler(svcs.Notifications, cfg)

	wishlistGroup := rg.Group("/wishlist")
	wishlistGroup.Use(middleware.AuthMiddleware(cfg))
	{
		wishlistGroup.GET("", wishlistHandler.GetWishlist)
		wishlistGroup.POST("", wishlistHandler.AddToWishlist)
		wishlistGroup.DELETE("/:productId", wishlistHandler.RemoveFromWishlist)
	}

	reviews := rg.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware(cfg))
	{
		reviews.GET("/mine", reviewHandler.GetMyReviews)
		reviews.POST("", reviewHandler.CreateReview)
		reviews.PUT("/:id", reviewHandler.UpdateReview)
		reviews.DELETE("/:id", reviewHandler.DeleteReview)
	}

	notifications := rg.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(cfg))
	{
		notifications.GET("", notificationHandler.GetNotifications)
		notifications.GET("/stream", notificationHandler.StreamNotifications)
		notifications.PUT("/read-all", notificationHandler.MarkAllRead)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
		notifications.DELETE("/:id", notificationHandler.DeleteNotification)
	}
}
