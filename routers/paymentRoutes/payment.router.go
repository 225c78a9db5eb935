package paymentRoutes

import (
	controllers "lot/controllers/payment"
	"lot/middleware"
	"lot/utils"
	validators "lot/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up checkout and verification routes
func SetupPaymentRoutes(app *fiber.App, rz *utils.RazorpayClient) {
	paymentGroup := app.Group("/payment", middleware.JWTMiddleware)

	paymentGroup.Post("/create", validators.CreatePayment(), controllers.CreatePayment(rz))
	paymentGroup.Post("/verify", validators.VerifyPayment(), controllers.VerifyPayment(rz))
	paymentGroup.Get("/transactions", controllers.GetTransactions)
}
