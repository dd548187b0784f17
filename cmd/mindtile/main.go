package main

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/eringen/mindtile"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if mindtile.EnvOr("LOG_LEVEL", "") == "debug" {
		log.SetLevel(log.DebugLevel)
	}

	cfg := mindtile.SiteConfig{
		Name:        mindtile.EnvOr("SITE_NAME", "Blog"),
		URL:         mindtile.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: mindtile.EnvOr("SITE_DESCRIPTION", ""),
		Author:      mindtile.EnvOr("SITE_AUTHOR", ""),
		Addr:        mindtile.EnvOr("ADDR", ":3000"),

		APIBaseURL:        mindtile.MustEnv("API_BASE_URL"),
		GuardDatabasePath: mindtile.EnvOr("GUARD_DATABASE_PATH", "data/guard.db"),

		AdminPassword: mindtile.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: mindtile.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  mindtile.EnvOr("COOKIE_SECURE", "") == "true",
	}

	if ttl := mindtile.EnvOr("POST_CACHE_TTL", ""); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			log.Fatalf("invalid POST_CACHE_TTL: %v", err)
		}
		cfg.PostCacheTTL = d
	}

	app := mindtile.New(cfg)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatalf("mindtile: %v", err)
	}
}
