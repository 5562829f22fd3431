package project

import "testing"

func TestParseDetail(t *testing.T) {
	text := "Intro **bold**.\n\n{image:https://example.com/a.jpg:left:35%:A deer}\n\nMiddle.\n\n{image:https://example.com/b.jpg}\n\nEnd."
	segs := ParseDetail(text)
	if len(segs) != 5 {
		t.Fatalf("expected 5 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].Text != "Intro **bold**." {
		t.Fatalf("unexpected first text %q", segs[0].Text)
	}
	a := segs[1].Image
	if a == nil || a.Src != "https://example.com/a.jpg" || a.Align != "left" || a.Width != "35%" || a.Caption != "A deer" {
		t.Fatalf("unexpected first image %+v", a)
	}
	b := segs[3].Image
	if b == nil || b.Align != "right" || b.Width != "40%" || b.Caption != "Project image" {
		t.Fatalf("unexpected defaults %+v", b)
	}
	if segs[4].Text != "End." {
		t.Fatalf("unexpected tail %q", segs[4].Text)
	}
}

func TestParseDetailIgnoresLocalDirectives(t *testing.T) {
	segs := ParseDetail("see {image:files/x.png:left}")
	if len(segs) != 1 || segs[0].Image != nil {
		t.Fatalf("expected a single text segment, got %+v", segs)
	}
}

func TestParseDetailOfDefaultCatalog(t *testing.T) {
	c := mustDefault(t)
	p, err := c.Get("autonomous-nav")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var images int
	for _, s := range ParseDetail(p.DetailedDescription) {
		if s.Image != nil {
			images++
		}
	}
	if images != 2 {
		t.Fatalf("expected 2 inline images, got %d", images)
	}
}

func TestResolveURL(t *testing.T) {
	cases := []struct{ base, ref, want string }{
		{"https://folio.example/", "https://cdn.example/a.png", "https://cdn.example/a.png"},
		{"https://folio.example/site/", "/files/a.pdf", "https://folio.example/site/files/a.pdf"},
		{"https://folio.example", "files/a.pdf", "https://folio.example/files/a.pdf"},
		{"", "files/a.pdf", "/files/a.pdf"},
	}
	for _, tc := range cases {
		if got := ResolveURL(tc.base, tc.ref); got != tc.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tc.base, tc.ref, got, tc.want)
		}
	}
}

func TestProfileGreeting(t *testing.T) {
	p, err := DefaultProfile()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	want := `Welcome to Florian's terminal. Type "help" for available commands.`
	if got := p.Greeting(); got != want {
		t.Fatalf("greeting = %q", got)
	}
	if p.Resume == "" || p.Email == "" || len(p.Links) == 0 {
		t.Fatalf("profile is missing contact details: %+v", p)
	}
}
