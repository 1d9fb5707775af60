package main

import (
	"encoding/xml"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tradesy30/portfolio/internal/catalog"
	"github.com/tradesy30/portfolio/internal/contact"
)

// projectCardBadges is how many technology badges a project card shows
// before collapsing the rest into "+N more".
const projectCardBadges = 3

// pageMeta feeds the <head> title, description and share tags.
type pageMeta struct {
	Title       string
	Description string
	Path        string
	Type        string
	Robots      string
}

// formState is everything the contact form fragment needs to re-render.
type formState struct {
	Values  contact.Submission
	Errors  map[string]string
	Notice  string
	Success bool
}

func (s *server) page(meta pageMeta, data gin.H) gin.H {
	if meta.Title == "" {
		meta.Title = SiteTitle
	}
	if meta.Description == "" {
		meta.Description = SiteDescription
	}
	if meta.Type == "" {
		meta.Type = "website"
	}
	if meta.Robots == "" {
		meta.Robots = "index, follow, max-image-preview:large, max-snippet:-1, max-video-preview:-1"
	}

	out := gin.H{
		"site":       Site,
		"nav":        NavItems,
		"meta":       meta,
		"siteName":   SiteName,
		"siteURL":    s.cfg.SiteURL,
		"canonical":  s.cfg.SiteURL + meta.Path,
		"shareImg":   s.cfg.SiteURL + "/opengraph-image.png",
		"twitterImg": s.cfg.SiteURL + "/twitter-image.png",
		"shareAlt":   ShareImageAlt,
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}

func (s *server) home(c *gin.Context) {
	s.renderHome(c, http.StatusOK, formState{})
}

func (s *server) renderHome(c *gin.Context, status int, form formState) {
	c.HTML(status, "index.html", s.page(pageMeta{Path: "/"}, gin.H{
		"projects": s.projects.All(),
		"badges":   projectCardBadges,
		"form":     form,
	}))
}

func (s *server) projectDetail(c *gin.Context) {
	project, err := s.projects.BySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.notFound(c)
			return
		}
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "project.html", s.page(pageMeta{
		Title:       project.Title + " | " + Site.Name,
		Description: project.Description,
		Path:        project.Path(),
		Type:        "article",
	}, gin.H{
		"project": project,
	}))
}

func (s *server) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not-found.html", s.page(pageMeta{
		Title:  "Not Found | " + Site.Name,
		Path:   c.Request.URL.Path,
		Robots: "noindex",
	}, nil))
}

// HTMX Contact form endpoint - returns just the form HTML
func (s *server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-form.html", gin.H{"form": formState{}})
}

func (s *server) submitContact(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBind(&sub); err != nil {
		s.log.Debug("contact form bind failed", "request_id", requestID(c), "error", err)
	}

	meta := contact.Meta{HashedIP: s.hashIP(c.ClientIP()), RequestID: requestID(c)}
	err := s.contact.Submit(c.Request.Context(), sub, meta)

	status := http.StatusOK
	form := formState{Values: sub}
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		form.Errors = verr.Fields
	case err != nil:
		status = http.StatusBadGateway
		form.Notice = ContactFailure
	default:
		form = formState{Success: true, Notice: ContactSuccess}
	}

	if isHTMX(c) {
		c.HTML(status, "contact-form.html", gin.H{"form": form})
		return
	}
	s.renderHome(c, status, form)
}

func (s *server) resume(c *gin.Context) {
	if info, err := os.Stat(s.cfg.ResumePath); err != nil || info.IsDir() {
		s.notFound(c)
		return
	}
	c.FileAttachment(s.cfg.ResumePath, Site.ResumeFile)
}

func (s *server) shareImage(c *gin.Context) {
	png, err := s.share.PNG()
	if err != nil {
		s.log.Error("share image render failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400, immutable")
	c.Data(http.StatusOK, "image/png", png)
}

func (s *server) robots(c *gin.Context) {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("\nSitemap: " + s.cfg.SiteURL + "/sitemap.xml\n")
	c.String(http.StatusOK, b.String())
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (s *server) sitemap(c *gin.Context) {
	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: s.cfg.SiteURL + "/"}},
	}
	for _, p := range s.projects.All() {
		u := sitemapURL{Loc: s.cfg.SiteURL + p.Path()}
		if t, err := p.Published(); err == nil && !t.IsZero() {
			u.LastMod = t.Format(time.DateOnly)
		}
		set.URLs = append(set.URLs, u)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

func (s *server) health(c *gin.Context) {
	if s.store != nil {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "projects": s.projects.Len()})
}

func (s *server) apiProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"projects": s.projects.All()})
}

func (s *server) apiProject(c *gin.Context) {
	project, err := s.projects.BySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}
