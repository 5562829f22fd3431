package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/folio/pkg/files"
	"tableflip.dev/folio/pkg/project"
)

func init() {
	color.NoColor = true
}

func TestProjects(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowVisibility: true}
	pp.Projects(
		project.Project{ID: "arm", Title: "Robotic Arm", Tags: []string{"CAD", "C++"}},
		project.Project{ID: "cube", Title: "Cube Solver", ShowInProjects: project.Bool(false), ShowInTerminal: project.Bool(false)},
	)
	out := buf.String()
	for _, want := range []string{"ID", "Visibility", "arm", "Robotic Arm", "CAD, C++", "everywhere", "url-only"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestProjectsEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Projects()
	if strings.TrimSpace(buf.String()) != "none" {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
}

func TestTitleWithCount(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.TitleWithCount("Projects", 1)
	pp.TitleWithCount("Projects", 3)
	want := "Projects - 1 project\nProjects - 3 projects\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestFiles(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Files(files.Info{Name: "a.py", Kind: files.KindCode, Size: "1.5 KB"})
	out := buf.String()
	if !strings.Contains(out, "a.py") || !strings.Contains(out, "code") || !strings.Contains(out, "1.5 KB") {
		t.Fatalf("unexpected files output:\n%s", out)
	}
}
