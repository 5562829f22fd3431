package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header  HeaderTheme
	Footer  FooterTheme
	Panel   PanelTheme
	List    ListTheme
	Console ConsoleTheme
}

// HeaderTheme styles the navigation bar.
type HeaderTheme struct {
	Brand    lipgloss.Style
	Tab      lipgloss.Style
	ActiveTab lipgloss.Style
	Bar      lipgloss.Style
}

// FooterTheme groups styles used by the bottom status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Alert  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// ListTheme styles the project list.
type ListTheme struct {
	Item     lipgloss.Style
	Selected lipgloss.Style
	Tag      lipgloss.Style
	Muted    lipgloss.Style
}

// ConsoleTheme styles the terminal overlay.
type ConsoleTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Output lipgloss.Style
	Prompt lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	muted := lipgloss.Color("244")

	tab := lipgloss.NewStyle().Padding(0, 1).Foreground(muted)

	return Theme{
		Header: HeaderTheme{
			Brand:     lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1),
			Tab:       tab,
			ActiveTab: tab.Foreground(lipgloss.Color("255")).Bold(true).Underline(true),
			Bar:       lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(muted),
			Alert:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		List: ListTheme{
			Item:     lipgloss.NewStyle().PaddingLeft(2),
			Selected: lipgloss.NewStyle().PaddingLeft(1).Foreground(accent).Bold(true),
			Tag:      lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
			Muted:    lipgloss.NewStyle().Foreground(muted),
		},
		Console: ConsoleTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("70")).
				Padding(0, 1),
			Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("70")),
			Output: lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true),
		},
	}
}

// Plain returns a theme without colors or borders, used by tests and dumb
// terminals.
func Plain() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Header:  HeaderTheme{Brand: plain, Tab: plain.Padding(0, 1), ActiveTab: plain.Padding(0, 1), Bar: plain},
		Footer:  FooterTheme{Help: plain, Status: plain, Alert: plain},
		Panel:   PanelTheme{Frame: plain, Title: plain, Body: plain},
		List:    ListTheme{Item: plain.PaddingLeft(2), Selected: plain, Tag: plain, Muted: plain},
		Console: ConsoleTheme{Frame: plain, Title: plain, Output: plain, Prompt: plain},
	}
}
