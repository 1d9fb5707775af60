// Package catalog holds the hand-authored list of portfolio projects.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed projects.yaml
var projectsYAML []byte

var ErrNotFound = errors.New("project not found")

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Catalog is a read-only view over the project records.
type Catalog struct {
	projects []Project
	bySlug   map[string]int
}

type document struct {
	Projects []Project `yaml:"projects"`
}

// Load parses the embedded project list.
func Load() (*Catalog, error) {
	return Parse(projectsYAML)
}

// MustLoad is Load for package-level initialisation; it panics on a
// malformed embedded file.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic("Failed to load projects.yaml: " + err.Error())
	}
	return c
}

// Parse decodes and validates a YAML project document.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse projects: %w", err)
	}
	return New(doc.Projects)
}

// New validates projects and builds the slug index.
func New(projects []Project) (*Catalog, error) {
	if err := Validate(projects); err != nil {
		return nil, err
	}
	c := &Catalog{
		projects: projects,
		bySlug:   make(map[string]int, len(projects)),
	}
	for i, p := range projects {
		c.bySlug[p.Slug] = i
	}
	return c, nil
}

// Validate checks the authoring invariants: ids and slugs unique, slugs
// URL-safe, titles present.
func Validate(projects []Project) error {
	var errs []error
	ids := make(map[int]string, len(projects))
	slugs := make(map[string]int, len(projects))

	for i, p := range projects {
		ref := fmt.Sprintf("project #%d (%q)", i+1, p.Slug)
		if p.ID <= 0 {
			errs = append(errs, fmt.Errorf("%s: id must be positive", ref))
		} else if other, ok := ids[p.ID]; ok {
			errs = append(errs, fmt.Errorf("%s: id %d already used by %q", ref, p.ID, other))
		} else {
			ids[p.ID] = p.Slug
		}

		if !slugPattern.MatchString(p.Slug) {
			errs = append(errs, fmt.Errorf("%s: slug must be lowercase words joined by hyphens", ref))
		} else if j, ok := slugs[p.Slug]; ok {
			errs = append(errs, fmt.Errorf("%s: slug duplicates project #%d", ref, j+1))
		} else {
			slugs[p.Slug] = i
		}

		if strings.TrimSpace(p.Title) == "" {
			errs = append(errs, fmt.Errorf("%s: title is required", ref))
		}
		if _, err := p.Published(); err != nil {
			errs = append(errs, fmt.Errorf("%s: date %q is not YYYY-MM", ref, p.Date))
		}
	}
	return errors.Join(errs...)
}

// All returns the projects in authored order.
func (c *Catalog) All() []Project {
	return c.projects
}

// BySlug returns the project with the given slug.
func (c *Catalog) BySlug(slug string) (Project, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Project{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return c.projects[i], nil
}

func (c *Catalog) Slugs() []string {
	out := make([]string, 0, len(c.projects))
	for _, p := range c.projects {
		out = append(out, p.Slug)
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.projects)
}
