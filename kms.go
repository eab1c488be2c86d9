package main

import (
	"html/template"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"kms.GO/api"
	_ "kms.GO/api/admin"
	_ "kms.GO/api/health"
	_ "kms.GO/api/special"
	"kms.GO/config"
	"kms.GO/core/auth"
	html "kms.GO/html"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()

	// Initialize Redis
	config.InitRedis()
	redisStatus := "Redis not configured or not reachable, caching is in-memory only."
	if config.RedisClient != nil {
		err := config.RedisClient.Ping(config.RedisCtx()).Err()
		if err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil // Disable Redis if not reachable
			redisStatus = "Redis configured but not reachable, caching is in-memory only."
		}
	}
	log.Println(redisStatus)

	repo := config.NewStore()

	// Check the store: a missing file is created empty here
	specials, err := repo.ReadAll()
	if err != nil {
		log.Fatalf("failed to open specials store: %v", err)
	}
	log.Printf("Specials store ready at %s (%d records)", repo.Path(), len(specials))

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	// Register the template renderer
	t := &html.Template{
		Templates: template.Must(template.ParseGlob("html/*.html")),
	}
	e.Renderer = t

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())
	api.ApplyModules(apiGroup, repo)
	api.ApplyRoutes(e, repo)
	html.RegisterSpecialHTMLRoutes(e, repo)

	// ASCII banner on start (random font each run)
	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom"}
	fig := figure.NewFigure("KMS Specials ->", fonts[rand.Intn(len(fonts))], true)
	fig.Print()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
