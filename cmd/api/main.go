// Package main is the entry point for the wave planning API.
//
// @title Wave Planning API
// @version 0.1.0
// @description REST API for multi-wave delivery orchestration: decomposing
// @description a delivery day into three waves around assembly-hub
// @description rendezvous swaps, delegating routing to a VRP solver
// @description collaborator, and reconciling solver output into per-vehicle
// @description task schedules and swap manifests.
// @description
// @description Features:
// @description - Three-wave plan construction with rendezvous binary search
// @description - Negative-skill cross-wave vehicle eligibility encoding
// @description - Inter-vehicle swap manifest derivation
// @description - Point-in-polygon delivery zone pre-assignment (v2)
//
// @contact.name Wave Planning Team
// @contact.url https://github.com/Yeong-ho/jeju-onul-api
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /
//
// @tag.name Health
// @tag.description Health check and version endpoints
//
// @tag.name Planning
// @tag.description Wave plan construction endpoints
package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/Yeong-ho/jeju-onul-api/internal/handlers"
	"github.com/Yeong-ho/jeju-onul-api/internal/planner"
	applogger "github.com/Yeong-ho/jeju-onul-api/pkg/logger"
	"github.com/Yeong-ho/jeju-onul-api/pkg/routing"
	"github.com/Yeong-ho/jeju-onul-api/pkg/solver"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "github.com/Yeong-ho/jeju-onul-api/docs"
)

func main() {
	appLogger := applogger.New()

	version := mustGetEnv("VERSION")
	solverURL := mustGetEnv("SOLVER_URL")

	routingURLs := map[models.Profile]string{
		models.ProfileCar: mustGetEnv("ROUTING_URL_CAR"),
	}

	solverClient, err := solver.NewClient(solver.Config{
		BaseURL:   solverURL,
		RateLimit: getEnvFloat("SOLVER_RATE_LIMIT_PER_SEC", 10),
	})
	if err != nil {
		log.Fatalf("failed to create solver client: %v", err)
	}

	routingClient, err := routing.NewClient(routing.Config{
		BaseURLs:  routingURLs,
		RateLimit: getEnvFloat("ROUTING_RATE_LIMIT_PER_SEC", 10),
	})
	if err != nil {
		log.Fatalf("failed to create routing client: %v", err)
	}

	var redisClient *redis.Client
	if redisURL := getEnv("REDIS_URL", ""); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("failed to parse REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			appLogger.RedisCacheDisabled("ping failed", err)
			redisClient = nil
		} else {
			appLogger.RedisConnected()
		}
	} else {
		appLogger.RedisCacheDisabled("REDIS_URL not set", nil)
	}

	deps := planner.Deps{
		Version: version,
		Pool:    planner.NewRoutingPool(routingClient, redisClient, getEnvInt("ROUTING_WORKER_POOL_SIZE", 50), appLogger),
	}

	h := handlers.New(solverClient, routingClient, deps, appLogger, version)

	app := fiber.New(fiber.Config{
		AppName: "wave-planner-api v0.1.0",
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     getEnv("CORS_ORIGINS", "*"),
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
	}))

	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	app.Get("/health", h.Health)
	app.Get("/version", h.Version)

	v1 := app.Group("/v1")
	v1.Post("/jeju_onul", h.JejuOnul)

	v2 := app.Group("/v2")
	v2.Post("/jeju_onul_before", h.JejuOnulBefore)
	v2.Post("/jeju_onul_after", h.JejuOnulAfter)
	v2.Post("/auto_pilot", h.AutoPilot)

	port := getEnv("PORT", "8080")
	log.Printf("starting wave planning API on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("required environment variable %s is not set", key)
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
