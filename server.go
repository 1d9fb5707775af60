package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tradesy30/portfolio/internal/adminauth"
	"github.com/tradesy30/portfolio/internal/catalog"
	"github.com/tradesy30/portfolio/internal/config"
	"github.com/tradesy30/portfolio/internal/contact"
	"github.com/tradesy30/portfolio/internal/logger"
	"github.com/tradesy30/portfolio/internal/ogimage"
	"github.com/tradesy30/portfolio/internal/store"
)

const trackTimeout = 5 * time.Second

type server struct {
	cfg      *config.Config
	log      *logger.Logger
	projects *catalog.Catalog
	store    *store.Store
	contact  *contact.Service
	assets   *staticAssets
	share    *ogimage.Cache

	sessions    *adminauth.Sessions
	hashingSalt string

	// background visitor writes, drained before the store closes
	bg sync.WaitGroup
}

// newServer wires the handlers. st may be nil, in which case nothing is
// tracked or recorded and the admin pages report an error.
func newServer(cfg *config.Config, log *logger.Logger, projects *catalog.Catalog, st *store.Store, sender contact.Sender) (*server, error) {
	if cfg == nil || log == nil || projects == nil || sender == nil {
		return nil, errors.New("server: missing dependency")
	}

	var rec contact.Recorder
	if st != nil {
		rec = st
	}

	assets, err := newStaticAssets()
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		random, err := randomHex(32)
		if err != nil {
			return nil, fmt.Errorf("session secret: %w", err)
		}
		secret = []byte(random)
	}
	sessions, err := adminauth.NewSessions(secret, adminauth.DefaultTTL)
	if err != nil {
		return nil, err
	}
	salt, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("hashing salt: %w", err)
	}

	return &server{
		cfg:         cfg,
		log:         log.With("component", "web"),
		projects:    projects,
		store:       st,
		contact:     contact.NewService(log, sender, rec),
		assets:      assets,
		share:       ogimage.NewCache(ShareCard()),
		sessions:    sessions,
		hashingSalt: salt,
	}, nil
}

func (s *server) routes() (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), requestIDMiddleware(), requestLogger(s.log), s.visitorTracking())

	r.GET("/static/*filepath", s.assets.serve)
	r.HEAD("/static/*filepath", s.assets.serve)

	r.GET("/", s.home)
	r.GET("/projects/:slug", s.projectDetail)
	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.submitContact)
	r.GET("/resume", s.resume)

	r.GET("/opengraph-image.png", s.shareImage)
	r.GET("/twitter-image.png", s.shareImage)
	r.GET("/robots.txt", s.robots)
	r.GET("/sitemap.xml", s.sitemap)
	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.Use(s.cors())
	api.GET("/projects", s.apiProjects)
	api.GET("/projects/:slug", s.apiProject)

	s.setupAdminRoutes(r)

	r.NoRoute(s.notFound)
	return r, nil
}

func (s *server) cors() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-Requested-With"},
		MaxAge:       12 * time.Hour,
	}
	if len(s.cfg.CORSOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.cfg.CORSOrigins
	}
	return cors.New(cfg)
}

// wait blocks until background visitor writes finish.
func (s *server) wait() {
	s.bg.Wait()
}

// purgeVisitors drops visits past the retention window and reports how many
// rows went.
func (s *server) purgeVisitors(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, nil
	}
	n, err := s.store.PurgeVisitorsOlderThan(ctx, s.cfg.RetentionMonths)
	if err != nil {
		s.log.Error("visitor cleanup failed", "error", err)
		return 0, err
	}
	if n > 0 {
		s.log.Info("privacy cleanup removed old visitor records", "rows", n, "months", s.cfg.RetentionMonths)
	}
	return n, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
