package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/KAVIN131005/Florist-Backend/internal/config"
	"github.com/KAVIN131005/Florist-Backend/internal/gateway"
	"github.com/KAVIN131005/Florist-Backend/internal/handlers"
	"github.com/KAVIN131005/Florist-Backend/internal/middleware"
	"github.com/KAVIN131005/Florist-Backend/internal/models"
	"github.com/KAVIN131005/Florist-Backend/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	razorpay := gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	walletService := services.NewWalletService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db)
	paymentService := services.NewPaymentService(db, razorpay, cfg)
	floristService := services.NewFloristService(db, walletService)

	authHandler := handlers.NewAuthHandler(db, cfg, walletService)
	productHandler := handlers.NewProductHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, paymentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	floristHandler := handlers.NewFloristHandler(floristService)
	adminHandler := handlers.NewAdminHandler(db, orderService)
	userHandler := handlers.NewUserHandler(db, walletService)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Public catalog
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/featured", productHandler.GetFeatured)
	products.Get("/:id", productHandler.GetProduct)
	products.Get("/:id/reviews", reviewHandler.ListReviews)

	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.ListCategories)

	// Authenticated routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/user/me", userHandler.Me)
	protected.Get("/user/wallet/balance", userHandler.Wallet)

	protected.Post("/products/:id/reviews", reviewHandler.CreateReview)

	cart := protected.Group("/cart")
	cart.Get("/", cartHandler.GetCart)
	cart.Post("/items", cartHandler.AddItem)
	cart.Put("/items/:itemId", cartHandler.UpdateItem)
	cart.Delete("/items/:itemId", cartHandler.RemoveItem)
	cart.Delete("/", cartHandler.ClearCart)

	orders := protected.Group("/orders")
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/", orderHandler.ListOrders)
	orders.Get("/:id", orderHandler.GetOrder)

	payments := protected.Group("/payments")
	payments.Post("/order", paymentHandler.CreateGatewayOrder)
	payments.Post("/confirm", paymentHandler.ConfirmPayment)

	protected.Post("/florists/apply", floristHandler.Apply)

	// Florist routes
	florist := protected.Group("", middleware.RequireRole(models.RoleFlorist))
	florist.Get("/florists/products", productHandler.ListMine)
	florist.Post("/products", productHandler.CreateProduct)
	florist.Put("/products/:id", productHandler.UpdateProduct)
	florist.Patch("/products/:id/stock", productHandler.UpdatePriceAndStock)
	florist.Delete("/products/:id", productHandler.DeleteProduct)

	// Admin routes
	admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/orders", adminHandler.ListAllOrders)
	admin.Put("/orders/:id/status", orderHandler.UpdateStatus)
	admin.Get("/stats", adminHandler.PlatformStats)
	admin.Post("/categories", categoryHandler.CreateCategory)
	admin.Delete("/categories/:id", categoryHandler.DeleteCategory)
	admin.Get("/florist-applications", floristHandler.ListAll)
	admin.Get("/florist-applications/pending", floristHandler.ListPending)
	admin.Put("/florist-applications/:id/approve", floristHandler.Approve)
	admin.Put("/florist-applications/:id/reject", floristHandler.Reject)
}
