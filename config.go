package mindtile

import "time"

// SiteConfig holds all configuration for a mindtile site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name shown in the footer

	Addr       string // Listen address (default ":3000")
	APIBaseURL string // Required: base URL of the content API

	GuardDatabasePath string // SQLite path for the like/vote guard (default "data/guard.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL    time.Duration // Listing cache TTL (default 1min)
	EditorSessionTTL time.Duration // Idle builder session lifetime (default 30min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.GuardDatabasePath == "" {
		c.GuardDatabasePath = "data/guard.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = time.Minute
	}
	if c.EditorSessionTTL == 0 {
		c.EditorSessionTTL = 30 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
