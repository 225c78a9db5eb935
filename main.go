package main

import (
	"lot/config"
	"lot/database"
	adminRoutes "lot/routers/adminRoutes"
	authRoutes "lot/routers/authRoutes"
	courseRoutes "lot/routers/courseRoutes"
	dashboardRoutes "lot/routers/dashboardRoutes"
	eventRoutes "lot/routers/eventRoutes"
	homeRoutes "lot/routers/homeRoutes"
	paymentRoutes "lot/routers/paymentRoutes"
	userRoutes "lot/routers/userRoutes"
	"lot/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	wa := utils.NewWhatsAppClient(
		config.AppConfig.TwilioAccountSID,
		config.AppConfig.TwilioAuthToken,
		config.AppConfig.TwilioWhatsAppFrom,
	)
	rz := utils.NewRazorpayClient(
		config.AppConfig.RazorpayKeyID,
		config.AppConfig.RazorpayKeySecret,
	)

	// Hourly event reminder job
	reminderCron := utils.StartReminderScheduler(wa)
	defer reminderCron.Stop()

	homeRoutes.SetupHomeRoutes(app)
	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app, wa)
	paymentRoutes.SetupPaymentRoutes(app, rz)
	eventRoutes.SetupEventRoutes(app, wa)
	dashboardRoutes.SetupDashboardRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
