package main

import (
	"github.com/tradesy30/portfolio/internal/catalog"
	"github.com/tradesy30/portfolio/internal/ogimage"
)

// Profile is the site owner copy rendered on every page.
type Profile struct {
	Name       string
	Initials   string
	Role       string
	Headline   string
	Location   string
	About      string
	GitHub     string
	ResumeFile string
	Stack      []catalog.Technology
}

type NavItem struct {
	Name string
	Href string
}

var (
	Site = Profile{
		Name:     "Christopher Rodriguez",
		Initials: "CR",
		Role:     "Frontend Developer",
		Headline: "Full Stack Developer",
		Location: "Greensboro, NC, USA",
		About: "Passionate about crafting exceptional web experiences through modern, accessible applications. " +
			"With expertise in React and Next.js, I transform complex challenges into elegant, user-centric solutions.",
		GitHub:     "https://github.com/Tradesy30",
		ResumeFile: "Christopher-Rodriguez-CV.pdf",
		Stack: []catalog.Technology{
			{Name: "React", Color: "#0070F3"},
			{Name: "Next.js", Color: "#0070F3"},
			{Name: "TypeScript", Color: "#3178C6"},
			{Name: "Tailwind", Color: "#38B2AC"},
			{Name: "Shadcn UI", Color: "#8A2BE2"},
			{Name: "REST APIs", Color: "#FF4D94"},
		},
	}

	NavItems = []NavItem{
		{Name: "About", Href: "/#hero"},
		{Name: "Projects", Href: "/#projects"},
		{Name: "Contact", Href: "/#contact"},
	}

	SiteTitle       = Site.Name + " | " + Site.Headline
	SiteName        = Site.Name + " Portfolio"
	SiteDescription = "Full Stack Developer specializing in modern web applications with Next.js, TypeScript, and React. " +
		"Explore my portfolio featuring interactive animations and responsive design."
	ShareImageAlt = Site.Name + " - " + Site.Headline + " Portfolio"

	ContactSuccess = "Message sent successfully! Thank you for reaching out. I'll get back to you soon."
	ContactFailure = "Failed to send message. Please try again."
)

// ShareCard is the content of the OpenGraph and Twitter images.
func ShareCard() ogimage.Card {
	return ogimage.Card{
		Name:  Site.Name,
		Role:  Site.Headline,
		Chips: []string{"Next.js", "TypeScript", "React"},
	}
}
