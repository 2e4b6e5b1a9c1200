package main

import (
	"context"
	"log"
	"os"
	"strings"

	"fitpickd/condb"
	"fitpickd/middleware"
	"fitpickd/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	conn, err := condb.Connect()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := condb.Migrate(context.Background(), conn); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	conn.Close(context.Background())

	app := fiber.New()

	allow := os.Getenv("ALLOW_ORIGINS")
	if strings.TrimSpace(allow) == "" {
		// dev default
		allow = "http://127.0.0.1:5500,http://localhost:5500,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allow, // comma separated
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Set-Cookie",
		AllowCredentials: true,
	}))

	app.Use(middleware.GeneralRateLimit())

	app.Static("/static", "./static")

	routes.RegisterRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Fatal(app.Listen(":" + port))
}
