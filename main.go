package main

import (
	"log"
	"os"
	"strings"
	"time"

	"kasir-backend/config"
	"kasir-backend/middleware"
	"kasir-backend/routes"
	"kasir-backend/store"
	"kasir-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment")
	}

	gin.SetMode(gin.ReleaseMode)
	log.Printf("Running in %s mode", gin.Mode())

	r := gin.Default()

	r.Use(middleware.PrometheusMiddleware())

	// /metrics endpoint
	r.GET("/metrics", func(c *gin.Context) {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	// Настройка CORS
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Подключение к базе данных. Без MONGO_URI сервер поднимается в
	// деградированном режиме: чтение пустое, запись отвечает ошибкой.
	database, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if database == nil {
		log.Printf("MONGO_URI not set, running without database")
	}
	db := store.NewMongo(database)

	// Настройка временной зоны и планировщика задач
	tz := os.Getenv("TZ")
	if tz == "" {
		tz = "Asia/Jakarta"
	}
	location, err := time.LoadLocation(tz)
	if err != nil {
		log.Fatalf("Failed to load timezone %s: %v", tz, err)
	}
	s := gocron.NewScheduler(location)
	s.Every(1).Day().At("07:00").Do(func() { utils.CheckLowStock(db) })
	s.StartAsync() // Запуск планировщика в фоновом режиме

	routes.InitializeRoutes(r, db)

	// Запуск сервера
	port := os.Getenv("PORT")
	if port == "" {
		port = "1414"
	}

	r.Run(":" + port)
}
