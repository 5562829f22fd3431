package markdown

import (
	"strings"
	"testing"
)

func TestPlainRendering(t *testing.T) {
	m := New(60, 20, Options{Style: "notty", Plain: true})
	m.SetMarkdown("# Arm\n\nA robotic arm.\n\n## Files\n\n- arm.step\n")
	if m.Err() != nil {
		t.Fatalf("render: %v", m.Err())
	}
	view := m.View()
	if strings.Contains(view, "\x1b[") {
		t.Fatalf("plain output contains escapes: %q", view)
	}
	for _, want := range []string{"Arm", "A robotic arm.", "arm.step"} {
		if !strings.Contains(view, want) {
			t.Errorf("missing %q in:\n%s", want, view)
		}
	}
}

func TestUnknownStyleReportsError(t *testing.T) {
	m := New(60, 20, Options{Style: "no-such-style"})
	m.SetMarkdown("hello")
	if m.Err() == nil {
		t.Fatalf("expected an error for an unknown style")
	}
	if !strings.Contains(m.View(), "document unavailable") {
		t.Fatalf("expected fallback text, got:\n%s", m.View())
	}
}

func TestPlainStripsEveryEscape(t *testing.T) {
	m := New(60, 20, Options{Style: "dark", Plain: true})
	// a hyperlink (OSC 8) around styled text
	m.SetMarkdown("\x1b]8;;https://example.com\x1b\\\x1b[1mlink\x1b[0m\x1b]8;;\x1b\\ text")
	view := m.View()
	if strings.Contains(view, "\x1b") {
		t.Fatalf("escape left in plain output: %q", view)
	}
	if !strings.Contains(view, "link") {
		t.Fatalf("text lost: %q", view)
	}
}
