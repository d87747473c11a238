package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort       string
	DBDSN         string
	JWTSecret     string
	JWTExpiresMin int

	RedisAddr     string
	RedisPassword string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
	SMTPFrom     string
	SMTPFromName string

	GoogleClientID string
	GoogleSecret   string
	GoogleRedirect string
	GithubClientID string
	GithubSecret   string
	GithubRedirect string

	FrontendBaseURL string
}

func Load() Config {
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	return Config{
		AppPort:       get("APP_PORT", "8080"),
		DBDSN:         must("DB_DSN"),
		JWTSecret:     must("JWT_SECRET"),
		JWTExpiresMin: expires,

		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),

		SMTPHost:     get("SMTP_HOST", ""),
		SMTPPort:     get("SMTP_PORT", "587"),
		SMTPUser:     get("SMTP_USER", ""),
		SMTPPass:     get("SMTP_PASS", ""),
		SMTPFrom:     get("SMTP_FROM", get("SMTP_USER", "")),
		SMTPFromName: get("SMTP_FROM_NAME", "MeuFreelas"),

		GoogleClientID: get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:   get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect: get("GOOGLE_REDIRECT_URI", ""),
		GithubClientID: get("GITHUB_CLIENT_ID", ""),
		GithubSecret:   get("GITHUB_CLIENT_SECRET", ""),
		GithubRedirect: get("GITHUB_REDIRECT_URI", ""),

		FrontendBaseURL: get("FRONTEND_URL", "http://localhost:3000"),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
