// Package printers renders catalog data for the command line.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/folio/pkg/files"
	"tableflip.dev/folio/pkg/project"
)

// PrettyPrint writes coloured, aligned output to Out.
type PrettyPrint struct {
	Out io.Writer
	// ShowVisibility adds the visibility group column.
	ShowVisibility bool
}

// New returns a PrettyPrint on color.Output.
func New() *PrettyPrint {
	return &PrettyPrint{Out: color.Output}
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " project")
	default:
		_, _ = c.Fprintln(pp.out(), " projects")
	}
}

// Projects prints one row per project.
func (pp *PrettyPrint) Projects(list ...project.Project) {
	if len(list) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	id := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tags := color.New(color.FgCyan)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	if pp.ShowVisibility {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Tags"), bold.Sprint("Visibility"))
	} else {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Tags"))
	}
	for _, p := range list {
		row := []interface{}{id.Sprint(p.ID), p.Title, tags.Sprint(strings.Join(p.Tags, ", "))}
		if pp.ShowVisibility {
			row = append(row, p.Visibility().String())
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Project prints the detail view of one project.
func (pp *PrettyPrint) Project(p project.Project) {
	pp.Title(p.Title)
	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(pp.out(), "%s  [%s]\n\n", p.Path(), strings.Join(p.Tags, ", "))
	_, _ = fmt.Fprintln(pp.out(), p.Description)
	pp.NewLine()
}

// Files prints attachment rows.
func (pp *PrettyPrint) Files(list ...files.Info) {
	if len(list) == 0 {
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("File"), bold.Sprint("Kind"), bold.Sprint("Size"))
	for _, f := range list {
		tbl.AddRow(f.Name, faint.Sprint(string(f.Kind)), f.Size)
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}
