package ui

import "charm.land/lipgloss/v2"

// Color palette - Purple + Cyan/Teal theme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          = lipgloss.Color("#1F2937") // Dark background
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorSelf        = lipgloss.Color("#A78BFA") // Light purple for own messages
	ColorPeer        = lipgloss.Color("#22D3EE") // Bright cyan for other senders
	ColorLink        = lipgloss.Color("#60A5FA") // Blue for links
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for success
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)
)

// Status bar styles
var (
	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorTextInverse).
			Background(ColorSuccess).
			Padding(0, 1)

	StatusErrStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorError).
			Bold(true).
			Padding(0, 1)

	StatusLatencyStyle = lipgloss.NewStyle().
				Foreground(ColorTextInverse).
				Italic(true)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)
)

// Roster styles
var (
	RosterHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	RosterNameStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	RosterTypingStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true)
)

// Chat styles
var (
	ChatSelfStyle = lipgloss.NewStyle().
			Foreground(ColorSelf).
			Bold(true)

	ChatPeerStyle = lipgloss.NewStyle().
			Foreground(ColorPeer).
			Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	ChatStampStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ChatLinkStyle = lipgloss.NewStyle().
			Foreground(ColorLink).
			Underline(true)

	ChatImageStyle = lipgloss.NewStyle().
			Foreground(ColorLink).
			Bold(true)

	ChatUnseenStyle = lipgloss.NewStyle().
			Foreground(ColorTextInverse).
			Background(ColorSecondary).
			Bold(true).
			Padding(0, 1)

	ChatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)

	ModalErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	ModalBusyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Italic(true)
)
