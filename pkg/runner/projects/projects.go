package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/folio/pkg/files"
	"tableflip.dev/folio/pkg/printers"
	"tableflip.dev/folio/pkg/project"
)

// Projects lists or shows catalog entries.
type Projects struct {
	Catalog *project.Catalog
	// Sizer, when set, probes attachment sizes for a shown project.
	Sizer *files.Sizer

	ID     string
	Tag    string
	Search string
	// All lists the whole catalog in visibility groups.
	All    bool
	Random bool
	Pick   bool
	JSON   bool

	In  io.Reader
	Out io.Writer
}

func (n *Projects) out() io.Writer {
	if n.Out == nil {
		return color.Output
	}
	return n.Out
}

func (n *Projects) Do(ctx context.Context) error {
	switch {
	case n.ID != "":
		p, err := n.Catalog.Get(n.ID)
		if err != nil {
			return err
		}
		return n.show(ctx, p)

	case n.Random:
		p, ok := project.Random(nil, n.Catalog.RandomEligible())
		if !ok {
			return fmt.Errorf("no projects available for random selection")
		}
		return n.show(ctx, p)

	case n.Pick:
		p, err := n.pick()
		if err != nil {
			return err
		}
		return n.show(ctx, p)

	case n.All:
		return n.grouped()
	}

	list := n.Catalog.Filter(n.Tag, n.Search)
	if n.JSON {
		return n.encode(map[string]interface{}{"projects": orEmpty(list), "tags": n.Catalog.Tags()})
	}
	pp := &printers.PrettyPrint{Out: n.out()}
	pp.TitleWithCount("Projects", len(list))
	pp.Projects(list...)
	if tags := n.Catalog.Tags(); len(tags) > 0 {
		_, _ = color.New(color.Faint).Fprintf(n.out(), "tags: %s\n", strings.Join(tags, ", "))
	}
	return nil
}

func (n *Projects) grouped() error {
	groups := n.Catalog.Grouped()
	if n.JSON {
		out := make([]map[string]interface{}, 0, len(groups))
		for _, g := range groups {
			out = append(out, map[string]interface{}{
				"visibility": g.Visibility.String(),
				"projects":   orEmpty(g.Projects),
			})
		}
		return n.encode(map[string]interface{}{"groups": out})
	}
	pp := &printers.PrettyPrint{Out: n.out()}
	for _, g := range groups {
		pp.TitleWithCount(g.Visibility.Header(), len(g.Projects))
		pp.Projects(g.Projects...)
	}
	return nil
}

func (n *Projects) show(ctx context.Context, p project.Project) error {
	var infos []files.Info
	if n.Sizer != nil && len(p.Files) > 0 {
		var err error
		if infos, err = n.Sizer.Describe(ctx, p.Files); err != nil {
			return err
		}
	}
	if n.JSON {
		return n.encode(map[string]interface{}{"project": p, "files": infos})
	}
	pp := &printers.PrettyPrint{Out: n.out()}
	pp.Project(p)
	pp.Files(infos...)
	return nil
}

func (n *Projects) pick() (project.Project, error) {
	list := n.Catalog.Public()
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Title }} {{ .ID | faint }}",
		Inactive: "   {{ .Title }} {{ .ID | faint }}",
		Selected: "➜  {{ .Title | cyan }}",
		Details: `
--------- Details ----------
{{ .Description }}
`,
	}
	searcher := func(input string, index int) bool {
		return list[index].Matches(input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Projects",
		Items:     list,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
	}
	if n.In != nil {
		prompt.Stdin = io.NopCloser(n.In)
	}
	if n.Out != nil {
		prompt.Stdout = nopCloser{n.Out}
	}
	i, _, err := prompt.Run()
	if err != nil {
		return project.Project{}, err
	}
	return list[i], nil
}

func (n *Projects) encode(v interface{}) error {
	enc := json.NewEncoder(n.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orEmpty(list []project.Project) []project.Project {
	if list == nil {
		return []project.Project{}
	}
	return list
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
