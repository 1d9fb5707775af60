// admin.go - privacy-conscious visitor tracking and the admin pages
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tradesy30/portfolio/internal/adminauth"
	"github.com/tradesy30/portfolio/internal/store"
)

const (
	adminCookie   = "admin_token"
	visitorsLimit = 200
	messagesLimit = 100
)

// Hash IP address for privacy compliance (consistent per IP for the life
// of the process)
func (s *server) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + s.hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (s *server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(adminCookie)
		user, err := s.sessions.Verify(token)
		if err != nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set("admin_user", user)
		c.Next()
	}
}

func skipTracking(path string) bool {
	for _, prefix := range []string{"/static/", "/admin", "/api/", "/favicon", "/privacy", "/healthz", "/robots.txt", "/sitemap.xml", "/opengraph-image", "/twitter-image"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// visitorTracking records page views with a hashed client address. It skips
// assets and admin pages and respects Do Not Track.
func (s *server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.Request.URL.Path
		if s.store == nil || c.Request.Method != http.MethodGet || skipTracking(path) {
			return
		}
		if c.GetHeader("DNT") == "1" || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		visit := store.Visit{
			HashedIP:  s.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
		}
		s.bg.Add(1)
		go func() {
			defer s.bg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
			defer cancel()
			if err := s.store.RecordVisit(ctx, visit); err != nil {
				s.log.Warn("Error recording visitor", "error", err)
			}
		}()
	}
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", s.page(pageMeta{
			Title:  "Privacy Policy | " + Site.Name,
			Path:   "/privacy",
			Robots: "noindex",
		}, gin.H{"retentionMonths": s.cfg.RetentionMonths}))
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		if !adminauth.CheckCredentials(s.cfg.AdminUsername, s.cfg.AdminPassword, username, password) {
			s.log.Warn("Failed admin login attempt", "client_ip", c.ClientIP())
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		token, err := s.sessions.Issue(username)
		if err != nil {
			s.log.Error("Failed to issue admin session", "error", err)
			s.adminError(c, "Login failed")
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, token, int(s.sessions.TTL().Seconds()), "/admin", "", c.Request.TLS != nil, true)
		s.log.Info("Admin login successful", "client_ip", c.ClientIP())
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", c.Request.TLS != nil, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, ok := s.adminStats(c)
		if !ok {
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"title": "Dashboard",
			"stats": stats,
		})
	})

	admin.GET("/visitors", func(c *gin.Context) {
		if s.store == nil {
			s.adminError(c, "Visitor tracking is disabled")
			return
		}
		visitors, err := s.store.RecentVisitors(c.Request.Context(), visitorsLimit)
		if err != nil {
			s.log.Error("Error loading visitors", "error", err)
			s.adminError(c, "Failed to load visitors")
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"title":    "Visitors",
			"visitors": visitors,
		})
	})

	admin.GET("/messages", func(c *gin.Context) {
		if s.store == nil {
			s.adminError(c, "Message log is disabled")
			return
		}
		messages, err := s.store.RecentSubmissions(c.Request.Context(), messagesLimit)
		if err != nil {
			s.log.Error("Error loading messages", "error", err)
			s.adminError(c, "Failed to load messages")
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{
			"title":    "Messages",
			"messages": messages,
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.loadStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.purgeVisitors(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.loadStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.log.Info("Admin stats exported", "client_ip", c.ClientIP())
		c.JSON(http.StatusOK, stats)
	})
}

func (s *server) loadStats(ctx context.Context) (*store.Stats, error) {
	if s.store == nil {
		return &store.Stats{}, nil
	}
	return s.store.Stats(ctx)
}

func (s *server) adminStats(c *gin.Context) (*store.Stats, bool) {
	stats, err := s.loadStats(c.Request.Context())
	if err != nil {
		s.log.Error("Error loading admin stats", "error", err)
		s.adminError(c, "Failed to load statistics")
		return nil, false
	}
	return stats, true
}

func (s *server) adminError(c *gin.Context, msg string) {
	c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
		"title": "Error",
		"error": msg,
	})
}
