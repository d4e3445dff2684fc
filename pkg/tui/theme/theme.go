package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the terminal views.
type Theme struct {
	Footer FooterTheme
	Panel  PanelTheme
	Chat   ChatTheme
}

// FooterTheme groups styles used by the bottom status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// ChatTheme styles the turns of a conversation.
type ChatTheme struct {
	UserName      lipgloss.Style
	User          lipgloss.Style
	AssistantName lipgloss.Style
	Assistant     lipgloss.Style
	Pending       lipgloss.Style
}

// Default returns the built-in theme used across the views.
func Default() Theme {
	assistant := lipgloss.NewStyle().Foreground(lipgloss.Color("114"))

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Body:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		},
		Chat: ChatTheme{
			UserName:      lipgloss.NewStyle().Bold(true),
			User:          lipgloss.NewStyle(),
			AssistantName: assistant.Bold(true),
			Assistant:     assistant,
			Pending:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
	}
}
