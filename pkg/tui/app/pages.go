package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/folio/pkg/project"
)

// Page is a screen of the browser.
type Page int

const (
	PageAbout Page = iota
	PageProjects
	PageContact
	PageResume
	// PageProject is the detail view of one project.
	PageProject
)

// tabs are the pages reachable from the header, in order.
var tabs = []Page{PageAbout, PageProjects, PageContact, PageResume}

func (p Page) String() string {
	switch p {
	case PageProjects:
		return "Projects"
	case PageContact:
		return "Contact"
	case PageResume:
		return "Resume"
	case PageProject:
		return "Project"
	default:
		return "About"
	}
}

func (p Page) tab() int {
	if p == PageProject {
		return 1
	}
	return int(p)
}

func (p Page) next() Page { return tabs[(p.tab()+1)%len(tabs)] }

func (p Page) prev() Page { return tabs[(p.tab()+len(tabs)-1)%len(tabs)] }

// Route maps a site path to a page and, for project pages, the project id.
// Unknown paths land on About.
func Route(path string) (Page, string) {
	switch {
	case path == "/" || path == "":
		return PageAbout, ""
	case path == "/projects":
		return PageProjects, ""
	case strings.HasPrefix(path, "/projects/"):
		return PageProject, strings.TrimPrefix(path, "/projects/")
	case path == "/contact":
		return PageContact, ""
	case path == "/resume":
		return PageResume, ""
	default:
		return PageAbout, ""
	}
}

// navigate is the terminal's Navigator.
func (m *Model) navigate(path string) {
	page, id := Route(path)
	if page != PageProject {
		m.show(page)
		return
	}
	p, err := m.catalog.Get(id)
	if err != nil {
		m.log.Warn("navigate to unknown project", zap.String("path", path))
		m.show(PageProjects)
		return
	}
	m.open(p)
}

func (m *Model) show(p Page) {
	m.page = p
}

func (m *Model) open(p project.Project) {
	m.current = p
	for i, q := range m.projects {
		if q.ID == p.ID {
			m.selected = i
		}
	}
	m.detail.SetMarkdown(DetailMarkdown(p))
	m.page = PageProject
}

func (m *Model) body() string {
	switch m.page {
	case PageProjects:
		return m.projectList()
	case PageProject:
		return m.detail.View()
	case PageContact:
		return m.contactPage()
	case PageResume:
		v, _ := m.resume.View()
		return v
	default:
		v, _ := m.about.View()
		return v
	}
}

func (m *Model) projectList() string {
	var b strings.Builder
	b.WriteString(m.th.Panel.Title.Render(fmt.Sprintf("Projects (%d)", len(m.projects))))
	b.WriteString("\n\n")
	for i, p := range m.projects {
		line := p.Title + "  " + m.th.List.Tag.Render(strings.Join(p.Tags, ", "))
		if i == m.selected {
			b.WriteString(m.th.List.Selected.Render("> " + line))
		} else {
			b.WriteString(m.th.List.Item.Render(line))
		}
		b.WriteString("\n")
	}
	if len(m.projects) > 0 {
		b.WriteString("\n")
		b.WriteString(m.th.List.Muted.Render(m.projects[m.selected].Description))
		b.WriteString("\n\n")
		b.WriteString(m.th.Footer.Help.Render("↑/↓ select  enter open  r random"))
	}
	return b.String()
}

func (m *Model) contactPage() string {
	var b strings.Builder
	b.WriteString(m.th.Panel.Title.Render("Contact"))
	b.WriteString("\n\n")
	if m.profile.Email != "" {
		b.WriteString("Email: " + m.profile.Email + "\n")
	}
	for _, l := range m.profile.Links {
		b.WriteString(l.Name + ": " + l.URL + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.form.View())
	return b.String()
}

func (m *Model) resumeLines() []string {
	lines := []string{m.profile.Headline, "", m.profile.Summary}
	if len(m.profile.Skills) > 0 {
		lines = append(lines, "", "Skills: "+strings.Join(m.profile.Skills, ", "))
	}
	if m.profile.Resume != "" {
		lines = append(lines, "", "Download: "+m.profile.Resume)
	}
	return lines
}

// DetailMarkdown renders a project page as Markdown. Inline image directives
// become image references with their caption as alt text.
func DetailMarkdown(p project.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "*%s*\n\n", strings.Join(p.Tags, " · "))
	}
	b.WriteString(p.Description + "\n\n")

	for _, seg := range project.ParseDetail(p.DetailedDescription) {
		if seg.Image != nil {
			fmt.Fprintf(&b, "![%s](%s)\n\n", seg.Image.Caption, seg.Image.Src)
			continue
		}
		b.WriteString(strings.TrimSpace(seg.Text) + "\n\n")
	}

	if p.VideoURL != "" {
		fmt.Fprintf(&b, "## Video\n\n%s\n\n", p.VideoURL)
	}
	if len(p.Gallery) > 0 {
		b.WriteString("## Gallery\n\n")
		for _, img := range p.Gallery {
			fmt.Fprintf(&b, "- ![%s](%s)\n", img.Alt, img.Src)
		}
		b.WriteString("\n")
	}
	if len(p.Files) > 0 {
		b.WriteString("## Files\n\n")
		for _, f := range p.Files {
			fmt.Fprintf(&b, "- %s\n", f.Name)
		}
	}
	return b.String()
}
