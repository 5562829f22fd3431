// Package project holds the read-only portfolio catalog and the profile shown
// on the About, Contact and Resume pages.
package project

import "strings"

// Image is a gallery picture.
type Image struct {
	Src string `yaml:"src" json:"src"`
	Alt string `yaml:"alt,omitempty" json:"alt,omitempty"`
}

// File is a downloadable project attachment.
type File struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Project is one catalog entry. The Show* flags are tri-state: nil means the
// default, which is visible.
type Project struct {
	ID                  string   `yaml:"id" json:"id"`
	Title               string   `yaml:"title" json:"title"`
	Description         string   `yaml:"description" json:"description"`
	Image               string   `yaml:"image" json:"image"`
	Tags                []string `yaml:"tags" json:"tags"`
	DetailedDescription string   `yaml:"detailedDescription,omitempty" json:"detailedDescription,omitempty"`
	VideoURL            string   `yaml:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Gallery             []Image  `yaml:"galleryImages,omitempty" json:"galleryImages,omitempty"`
	Files               []File   `yaml:"files,omitempty" json:"files,omitempty"`

	ShowInProjects      *bool `yaml:"showInProjects,omitempty" json:"showInProjects,omitempty"`
	ShowInTerminal      *bool `yaml:"showInTerminal,omitempty" json:"showInTerminal,omitempty"`
	ShowInRandomCommand *bool `yaml:"showInRandomCommand,omitempty" json:"showInRandomCommand,omitempty"`
}

// InProjects reports whether p is listed on the public projects page.
func (p Project) InProjects() bool { return p.ShowInProjects == nil || *p.ShowInProjects }

// InTerminal reports whether p is listed by the ungated terminal listing.
func (p Project) InTerminal() bool { return p.ShowInTerminal == nil || *p.ShowInTerminal }

// InRandom reports whether p may be picked by a random selection outside the
// ungated terminal listing. An unset flag defers to terminal visibility.
func (p Project) InRandom() bool {
	if p.ShowInRandomCommand != nil {
		return *p.ShowInRandomCommand
	}
	return p.InTerminal()
}

// Path is the router path of the project's detail page.
func (p Project) Path() string { return "/projects/" + p.ID }

// HasTag reports whether p carries tag exactly.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Matches reports whether query appears, case-insensitively, in the title,
// description or any tag. An empty query matches everything.
func (p Project) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// Visibility classifies where a project appears.
type Visibility int

const (
	// URLOnly projects are hidden from both the projects page and the terminal.
	URLOnly Visibility = iota
	// TerminalOnly projects are hidden from the projects page.
	TerminalOnly
	// PublicOnly projects are hidden from the terminal.
	PublicOnly
	// Everywhere projects are visible on both surfaces.
	Everywhere
)

// Visibility returns the group p belongs to in the authenticated listing.
func (p Project) Visibility() Visibility {
	inProjects, inTerminal := p.InProjects(), p.InTerminal()
	switch {
	case !inProjects && !inTerminal:
		return URLOnly
	case inTerminal && !inProjects:
		return TerminalOnly
	case inProjects && !inTerminal:
		return PublicOnly
	default:
		return Everywhere
	}
}

// Header is the group heading printed above the projects of v.
func (v Visibility) Header() string {
	switch v {
	case URLOnly:
		return "URL-ONLY (hidden from both terminal and projects page):"
	case TerminalOnly:
		return "TERMINAL-ONLY (hidden from projects page):"
	case PublicOnly:
		return "PUBLIC-ONLY (hidden from terminal):"
	default:
		return "PUBLIC & TERMINAL (visible everywhere):"
	}
}

func (v Visibility) String() string {
	switch v {
	case URLOnly:
		return "url-only"
	case TerminalOnly:
		return "terminal-only"
	case PublicOnly:
		return "public-only"
	default:
		return "everywhere"
	}
}

// Bool returns a pointer to b, for building catalogs in code.
func Bool(b bool) *bool { return &b }
