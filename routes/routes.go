package routes

import (
	"fitpickd/controllers"
	"fitpickd/middleware"
	"fitpickd/oauth"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes wires the open routes and the admin-gated routes. Catalog
// reads and customer self-service stay public; everything that mutates the
// catalog or touches assets goes through the admin gate.
func RegisterRoutes(app *fiber.App) {

	// admin session
	app.Post("/admin/login", middleware.AdminRateLimit(), controllers.AdminLogin)
	app.Post("/admin/verify-email", middleware.AdminRateLimit(), controllers.VerifyAdminEmail)
	app.Post("/admin/logout", controllers.AdminLogout)
	app.Get("/admin/verify-token", middleware.AdminRequired, controllers.VerifyAdminToken)

	// products: open reads (fixed paths before :id)
	app.Get("/products", controllers.GetProducts)
	app.Get("/products/available", controllers.GetAvailableProducts)
	app.Get("/products/out-of-stock", controllers.GetOutOfStockProducts)
	app.Get("/products/:id", controllers.GetProductByID)

	// products: gated mutations
	app.Post("/products", middleware.AdminRequired, controllers.CreateProduct)
	app.Patch("/products/:id", middleware.AdminRequired, controllers.UpdateProduct)
	app.Patch("/products/:id/featured", middleware.AdminRequired, controllers.ToggleFeatured)
	app.Patch("/products/:id/out-of-stock", middleware.AdminRequired, controllers.ToggleOutOfStock)
	app.Patch("/products/:id/images", middleware.AdminRequired, controllers.ReplaceImages)
	app.Delete("/products/:id", middleware.AdminRequired, controllers.DeleteProduct)

	// asset gateway
	app.Post("/upload", middleware.AdminRequired, controllers.UploadImage)
	app.Delete("/images", middleware.AdminRequired, controllers.DeleteImage)

	// customers
	app.Post("/customers", controllers.CreateCustomer)
	app.Get("/customers", middleware.AdminRequired, controllers.GetCustomers)
	app.Post("/customers/login", controllers.CustomerLogin)
	app.Get("/customers/:id", controllers.GetCustomerByID)
	app.Patch("/customers/:id", controllers.UpdateCustomer)
	app.Delete("/customers/:id", middleware.AdminRequired, controllers.DeleteCustomer)
	app.Post("/customers/:id/verify-password", controllers.VerifyCustomerPassword)
	app.Patch("/customers/:id/password", controllers.UpdateCustomerPassword)
	app.Post("/customers/:id/wishlist", controllers.AddToWishlist)
	app.Delete("/customers/:id/wishlist", controllers.RemoveFromWishlist)
	app.Get("/customers/:id/wishlist", controllers.GetWishlist)

	// password recovery
	app.Post("/auth/forgot-password", controllers.ForgotPassword)
	app.Post("/auth/reset-password", controllers.ResetPassword)

	// google oauth email verification
	app.Get("/auth/google", oauth.GoogleAuth)
	app.Get("/auth/google/callback", oauth.GoogleCallback)
	app.Get("/auth/google/forgot-password", oauth.GoogleAuthForgotPassword)
	app.Get("/auth/google/not-an-admin", oauth.GoogleAuthAdminLogin)
}
