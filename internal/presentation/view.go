package presentation

import (
	"log"
	"sort"
	"strconv"
	"time"

	"portfolio/internal/domain/portfolio"
)

type SkillCard struct {
	Name        string
	Category    string
	Icon        string
	Proficiency int
	// Width is the progress bar width, e.g. "85%".
	Width string
}

type Link struct {
	Label string
	URL   string
}

type ProjectCard struct {
	Title        string
	Description  string
	ImageURL     string
	ImageAlt     string
	Featured     bool
	Technologies []string
	Links        []Link
}

type ProfileView struct {
	Name        string
	Title       string
	Bio         string
	Email       string
	Location    string
	ImageURL    string
	ImageAlt    string
	GithubURL   string
	LinkedinURL string
	FacebookURL string
	ResumeURL   string
}

type CategoryTab struct {
	Name   string
	Active bool
}

type ContactView struct {
	Status  ContactStatus
	Notice  string
	Form    ContactForm
	Pending bool
	// ExpiresIn is how long the notice should remain visible from ShownAt.
	ExpiresIn time.Duration
}

type Page struct {
	Profile    ProfileView
	Categories []CategoryTab
	Skills     []SkillCard
	Projects   []ProjectCard
	Contact    ContactView
	Fallback   bool
}

// VisibleSkills filters by exact category ("all" or empty keeps everything)
// and orders by display_order, keeping input order for ties.
func VisibleSkills(skills []portfolio.Skill, category string) []SkillCard {
	picked := make([]portfolio.Skill, 0, len(skills))
	for _, s := range skills {
		if category == "" || category == CategoryAll || s.Category == category {
			picked = append(picked, s)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].DisplayOrder < picked[j].DisplayOrder })

	cards := make([]SkillCard, 0, len(picked))
	for _, s := range picked {
		cards = append(cards, SkillCard{
			Name:        s.Name,
			Category:    s.Category,
			Icon:        s.Icon,
			Proficiency: s.Proficiency,
			Width:       strconv.Itoa(s.Proficiency) + "%",
		})
	}
	return cards
}

// ProjectCards orders projects by display_order. A project whose
// technologies cannot be parsed is logged and shown without tags.
func ProjectCards(projects []portfolio.Project, logger *log.Logger) []ProjectCard {
	if logger == nil {
		logger = log.Default()
	}

	sorted := cloneProjects(projects)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DisplayOrder < sorted[j].DisplayOrder })

	cards := make([]ProjectCard, 0, len(sorted))
	for _, p := range sorted {
		tags, err := p.Technologies.List()
		if err != nil {
			logger.Printf("Project technologies unreadable | title=%q error=%v", p.Title, err)
			tags = nil
		}
		if tags == nil {
			tags = []string{}
		}

		img := p.ImageURL
		if img == "" {
			img = placeholderImage
		}

		var links []Link
		if p.GithubURL != "" {
			links = append(links, Link{Label: "View on GitHub", URL: p.GithubURL})
		}
		if p.LiveURL != "" {
			links = append(links, Link{Label: "Live Demo", URL: p.LiveURL})
		}

		cards = append(cards, ProjectCard{
			Title:        p.Title,
			Description:  p.Description,
			ImageURL:     img,
			ImageAlt:     p.Title,
			Featured:     p.Featured,
			Technologies: tags,
			Links:        links,
		})
	}
	return cards
}

func NewProfileView(p portfolio.Profile) ProfileView {
	v := ProfileView{
		Name:        p.Name,
		Title:       p.Title,
		Bio:         p.Bio,
		Email:       p.Email,
		Location:    p.Location,
		GithubURL:   p.GithubURL,
		LinkedinURL: p.LinkedinURL,
		FacebookURL: p.FacebookURL,
		ResumeURL:   p.ResumeURL,
	}
	if p.ProfileImage != "" {
		v.ImageURL = p.ProfileImage
		v.ImageAlt = p.Name
	}
	return v
}

// Categories lists "all" followed by each distinct category in display
// order of its first skill.
func Categories(skills []portfolio.Skill) []string {
	sorted := cloneSkills(skills)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DisplayOrder < sorted[j].DisplayOrder })

	out := []string{CategoryAll}
	seen := map[string]bool{CategoryAll: true}
	for _, s := range sorted {
		if s.Category == "" || seen[s.Category] {
			continue
		}
		seen[s.Category] = true
		out = append(out, s.Category)
	}
	return out
}

func categoryTabs(skills []portfolio.Skill, active string) []CategoryTab {
	if active == "" {
		active = CategoryAll
	}
	names := Categories(skills)
	tabs := make([]CategoryTab, 0, len(names))
	for _, n := range names {
		tabs = append(tabs, CategoryTab{Name: n, Active: n == active})
	}
	return tabs
}

// BuildPage is the whole view model for s.
func BuildPage(s State, logger *log.Logger) Page {
	c := ContactView{
		Status:  s.Contact.Status,
		Notice:  s.Contact.Notice,
		Form:    s.Contact.Form,
		Pending: s.Contact.Status == ContactSubmitting,
	}
	if !s.Contact.ExpiresAt().IsZero() {
		c.ExpiresIn = StatusDisplayTimeout
	}

	return Page{
		Profile:    NewProfileView(s.Profile),
		Categories: categoryTabs(s.Skills, s.ActiveCategory),
		Skills:     VisibleSkills(s.Skills, s.ActiveCategory),
		Projects:   ProjectCards(s.Projects, logger),
		Contact:    c,
		Fallback:   s.Source == SourceFallback,
	}
}
