package project

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrNotFound is returned by Get for an unknown project id.
var ErrNotFound = errors.New("project: not found")

// Catalog is an ordered, read-only list of projects.
type Catalog struct {
	projects []Project
	byID     map[string]int
}

// New builds a catalog from projects in the given order. Ids must be unique
// and non-empty.
func New(projects []Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]Project, len(projects)),
		byID:     make(map[string]int, len(projects)),
	}
	copy(c.projects, projects)
	for i, p := range c.projects {
		if p.ID == "" {
			return nil, fmt.Errorf("project: entry %d has no id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("project: duplicate id %q", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Parse decodes a YAML sequence of projects.
func Parse(data []byte) (*Catalog, error) {
	var projects []Project
	if err := yaml.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("project: decode catalog: %w", err)
	}
	return New(projects)
}

// Load reads the catalog at path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: read catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// All returns every project in catalog order.
func (c *Catalog) All() []Project {
	return c.filter(func(Project) bool { return true })
}

// Len is the number of projects.
func (c *Catalog) Len() int { return len(c.projects) }

// Get finds a project by id.
func (c *Catalog) Get(id string) (Project, error) {
	i, ok := c.byID[id]
	if !ok {
		return Project{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.projects[i], nil
}

// Public returns the projects listed on the projects page.
func (c *Catalog) Public() []Project { return c.filter(Project.InProjects) }

// Terminal returns the projects listed by the ungated terminal listing.
func (c *Catalog) Terminal() []Project { return c.filter(Project.InTerminal) }

// RandomEligible returns the projects a random pick may land on.
func (c *Catalog) RandomEligible() []Project { return c.filter(Project.InRandom) }

// Group is one visibility bucket of the authenticated listing.
type Group struct {
	Visibility Visibility
	Projects   []Project
}

// Grouped partitions the whole catalog into the four visibility groups, in
// the order URLOnly, TerminalOnly, PublicOnly, Everywhere. Catalog order is
// kept inside each group. Empty groups are included.
func (c *Catalog) Grouped() []Group {
	groups := []Group{{Visibility: URLOnly}, {Visibility: TerminalOnly}, {Visibility: PublicOnly}, {Visibility: Everywhere}}
	for _, p := range c.projects {
		v := p.Visibility()
		groups[v].Projects = append(groups[v].Projects, p)
	}
	return groups
}

// Flatten concatenates the groups' projects in order.
func Flatten(groups []Group) []Project {
	var out []Project
	for _, g := range groups {
		out = append(out, g.Projects...)
	}
	return out
}

// Tags returns the sorted, de-duplicated tags of the public projects.
func (c *Catalog) Tags() []string {
	seen := map[string]bool{}
	var tags []string
	for _, p := range c.Public() {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// Filter returns the public projects carrying tag (when set) and matching
// query.
func (c *Catalog) Filter(tag, query string) []Project {
	return filterList(c.Public(), tag, query)
}

// FilterAll is Filter over the whole catalog, hidden projects included.
func (c *Catalog) FilterAll(tag, query string) []Project {
	return filterList(c.projects, tag, query)
}

func filterList(list []Project, tag, query string) []Project {
	var out []Project
	for _, p := range list {
		if tag != "" && !p.HasTag(tag) {
			continue
		}
		if !p.Matches(query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Random picks one project from list using r. It reports false when list is
// empty. A nil r uses the global source.
func Random(r *rand.Rand, list []Project) (Project, bool) {
	if len(list) == 0 {
		return Project{}, false
	}
	var i int
	if r != nil {
		i = r.IntN(len(list))
	} else {
		i = rand.IntN(len(list))
	}
	return list[i], true
}

func (c *Catalog) filter(keep func(Project) bool) []Project {
	var out []Project
	for _, p := range c.projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
