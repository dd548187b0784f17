// Package mindtile is a block-based personal blog platform built with Go,
// Echo, and templ. The public site renders posts composed of typed content
// blocks; the admin area provides a drag-and-drop builder for them. All
// post and block persistence lives behind a remote content API; the only
// local state is a small SQLite database backing the like/vote repeat guard.
package mindtile

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/eringen/mindtile/api"
	"github.com/eringen/mindtile/guard"
	"github.com/eringen/mindtile/views"
)

// App is the central mindtile application. It wires together the API client,
// the listing cache, the guard store, the builder sessions and the routes.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	API    *api.Client
	Cache  *postCache
	Guard  *guard.Store

	site         views.SiteConfig
	loginLimiter *LoginLimiter
	editors      *editorSessions
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new mindtile App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		site: views.SiteConfig{
			Name:        cfg.Name,
			URL:         cfg.URL,
			Description: cfg.Description,
			Author:      cfg.Author,
		},
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the API client, guard store, cache, middleware and
// routes, then starts the server.
func (a *App) Start() error {
	if a.Config.APIBaseURL == "" {
		return fmt.Errorf("mindtile: APIBaseURL is required")
	}
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("mindtile: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("mindtile: SessionSecret is required")
	}

	if a.API == nil {
		a.API = api.NewClient(a.Config.APIBaseURL)
	}

	guardStore, err := guard.NewStore(a.Config.GuardDatabasePath)
	if err != nil {
		return fmt.Errorf("mindtile: init guard store: %w", err)
	}
	a.Guard = guardStore

	a.Cache = newPostCache(a.API, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.editors = newEditorSessions(a.Config.EditorSessionTTL)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	log.Infof("mindtile: serving %s on %s (api %s)", a.Config.Name, a.Config.Addr, a.Config.APIBaseURL)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded defaults are registered first; everything else under
	// /public/ falls through to the deployment's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/styles.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/favicon.svg", echo.WrapHandler(embeddedHandler))

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:id/", a.handlePost)
	e.POST("/blog/:id/like/", a.handleLike)
	e.POST("/blog/:id/vote/", a.handleVote)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/post/", a.handleAdminCreate)
	e.GET("/admin/post/:id/settings/", a.handleAdminSettings)
	e.POST("/admin/post/:id/settings/", a.handleAdminSave)
	e.DELETE("/admin/post/:id/", a.handleAdminDelete)

	// Block builder
	e.GET("/admin/post/:id/builder/", a.handleBuilder)
	e.POST("/admin/post/:id/builder/drag/", a.handleBuilderDrag)
	e.POST("/admin/post/:id/builder/element/:element/", a.handleBuilderElement)
	e.POST("/admin/post/:id/builder/save/", a.handleBuilderSave)
	e.POST("/admin/images/upload/", a.handleImageUpload)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.editors != nil {
		a.editors.stop()
	}
	if a.Guard != nil {
		return a.Guard.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("mindtile: required environment variable %s is not set", key)
	}
	return v
}
