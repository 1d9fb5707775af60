package catalog

import (
	"time"
)

// Image is one gallery entry on a project page.
type Image struct {
	URL     string `yaml:"url" json:"url"`
	Alt     string `yaml:"alt" json:"alt"`
	Caption string `yaml:"caption" json:"caption"`
}

// Technology is a coloured badge.
type Technology struct {
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}

// Tint is the badge background: the badge colour at low alpha.
func (t Technology) Tint() string {
	if len(t.Color) != 7 {
		return t.Color
	}
	return t.Color + "15"
}

type Feature struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Project represents a portfolio project
type Project struct {
	ID              int          `yaml:"id" json:"id"`
	Slug            string       `yaml:"slug" json:"slug"`
	Title           string       `yaml:"title" json:"title"`
	Description     string       `yaml:"description" json:"description"`
	LongDescription string       `yaml:"long_description" json:"longDescription"`
	CoverImage      string       `yaml:"cover_image" json:"coverImage"`
	Images          []Image      `yaml:"images" json:"images"`
	Tags            []string     `yaml:"tags" json:"tags"`
	Technologies    []Technology `yaml:"technologies" json:"technologies"`
	Features        []Feature    `yaml:"features" json:"features"`
	Challenges      []string     `yaml:"challenges" json:"challenges"`
	Learnings       []string     `yaml:"learnings" json:"learnings"`
	Link            string       `yaml:"link" json:"link"`
	GitHub          string       `yaml:"github" json:"github"`
	Date            string       `yaml:"date" json:"date"`
}

// LeadTechnologies returns at most n badges for the project card.
func (p Project) LeadTechnologies(n int) []Technology {
	if n < 0 {
		n = 0
	}
	if len(p.Technologies) <= n {
		return p.Technologies
	}
	return p.Technologies[:n]
}

// ExtraTechnologies is the number of badges hidden behind "+N more".
func (p Project) ExtraTechnologies(n int) int {
	if extra := len(p.Technologies) - n; extra > 0 {
		return extra
	}
	return 0
}

// Published parses the YYYY-MM date. The zero time is returned when the
// date is absent.
func (p Project) Published() (time.Time, error) {
	if p.Date == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01", p.Date)
}

// Path is the detail page route.
func (p Project) Path() string {
	return "/projects/" + p.Slug
}
