package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/meufreelas/meufreelas_be/internal/config"
	"github.com/meufreelas/meufreelas_be/internal/db"
	"github.com/meufreelas/meufreelas_be/internal/handlers"
	"github.com/meufreelas/meufreelas_be/internal/middleware"
	"github.com/meufreelas/meufreelas_be/internal/models"
	"github.com/meufreelas/meufreelas_be/internal/services/account"
	"github.com/meufreelas/meufreelas_be/internal/services/mailer"
	"github.com/meufreelas/meufreelas_be/internal/storage/gormstore"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	store := gormstore.New(gdb)
	if err := store.AutoMigrate(); err != nil {
		log.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis indisponível (%v): tokens de reset de senha não vão funcionar", err)
	}

	accounts := account.New(store)
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	authH := &handlers.AuthHandler{
		Accounts:        accounts,
		Mailer:          mail,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	oauthH := &handlers.OAuthHandler{
		Accounts:        accounts,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		GithubClientID:  cfg.GithubClientID,
		GithubSecret:    cfg.GithubSecret,
		GithubRedirect:  cfg.GithubRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	resetH := &handlers.PasswordResetHandler{
		Accounts:        accounts,
		RDB:             rdb,
		Mailer:          mail,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	healthH := &handlers.HealthHandler{Accounts: accounts}

	api := app.Group("/api")

	// public
	api.Get("/health", healthH.Health)
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Post("/auth", authH.AuthAction)
	api.Get("/oauth/start", oauthH.Start)
	api.Get("/oauth/callback", oauthH.Callback)
	api.Post("/oauth/complete", oauthH.Complete)
	api.Post("/forgot-password", resetH.Forgot)
	api.Post("/reset-password", resetH.Reset)

	// protected (JWT via cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", authH.Me)

	// admin only
	protected.Get("/admin/stats",
		middleware.RequireRoles(models.RoleAdmin),
		healthH.Health,
	)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
