package project

import (
	"net/url"
	"regexp"
	"strings"
)

var imageDirective = regexp.MustCompile(`\{image:(https?://[^:]+)(?::(left|right))?(?::(\d+%|auto))?(?::(.*?))?\}`)

// Segment is a piece of a detailed description: either markdown text or an
// inline image.
type Segment struct {
	Text  string       `json:"text,omitempty"`
	Image *InlineImage `json:"image,omitempty"`
}

// InlineImage is an image placed inside the description text.
type InlineImage struct {
	Src     string `json:"src"`
	Align   string `json:"align"`
	Width   string `json:"width"`
	Caption string `json:"caption,omitempty"`
}

// ParseDetail splits text around {image:URL[:left|right][:N%|auto][:caption]}
// directives. Alignment defaults to right, width to 40% and the caption to
// "Project image". Blank text between directives is dropped.
func ParseDetail(text string) []Segment {
	var segs []Segment
	addText := func(s string) {
		if strings.TrimSpace(s) != "" {
			segs = append(segs, Segment{Text: strings.Trim(s, "\n")})
		}
	}
	last := 0
	for _, m := range imageDirective.FindAllStringSubmatchIndex(text, -1) {
		addText(text[last:m[0]])
		img := &InlineImage{
			Src:     text[m[2]:m[3]],
			Align:   "right",
			Width:   "40%",
			Caption: "Project image",
		}
		if m[4] >= 0 {
			img.Align = text[m[4]:m[5]]
		}
		if m[6] >= 0 {
			img.Width = text[m[6]:m[7]]
		}
		if m[8] >= 0 && m[9] > m[8] {
			img.Caption = text[m[8]:m[9]]
		}
		segs = append(segs, Segment{Image: img})
		last = m[1]
	}
	addText(text[last:])
	return segs
}

// ResolveURL returns ref unchanged when it is an absolute http(s) URL and
// otherwise joins it onto base.
func ResolveURL(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if base == "" {
		return "/" + strings.TrimPrefix(ref, "/")
	}
	u, err := url.Parse(base)
	if err != nil {
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(ref, "/")
	}
	return u.JoinPath(strings.TrimPrefix(ref, "/")).String()
}
