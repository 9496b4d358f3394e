// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	TitleStyle   lipgloss.Style
	SubtleStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	// Calendar cells.
	CalDoneStyle    lipgloss.Style
	CalPartialStyle lipgloss.Style
	CalEmptyStyle   lipgloss.Style
	CalTodayStyle   lipgloss.Style
	CalFutureStyle  lipgloss.Style
	CalCursorStyle  lipgloss.Style
	CalWeekdayStyle lipgloss.Style
	CalMonthStyle   lipgloss.Style
	CalPadStyle     lipgloss.Style

	// Checklist.
	ChecklistDoneStyle     lipgloss.Style
	ChecklistPendingStyle  lipgloss.Style
	ChecklistSelectedStyle lipgloss.Style

	// TUI chrome.
	PaneBorderStyle       lipgloss.Style
	PaneBorderActiveStyle lipgloss.Style
	HelpStyle             lipgloss.Style
	StatusErrorStyle      lipgloss.Style
	InputPromptStyle      lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	SubtleStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error)

	CalDoneStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Success)
	CalPartialStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface)
	CalEmptyStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	CalTodayStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)
	CalFutureStyle = lipgloss.NewStyle().
		Foreground(p.Surface)
	CalCursorStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true)
	CalWeekdayStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)
	CalMonthStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	CalPadStyle = lipgloss.NewStyle()

	ChecklistDoneStyle = lipgloss.NewStyle().
		Foreground(p.Success)
	ChecklistPendingStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	ChecklistSelectedStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	PaneBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	PaneBorderActiveStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)
	InputPromptStyle = lipgloss.NewStyle().
		Foreground(p.Primary)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func colorHexPtr(c lipgloss.Color) *string {
	hex := string(c)
	if hex == "" {
		return nil
	}
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	p := CurrentPalette

	fg := colorHexPtr(p.Foreground)
	primary := colorHexPtr(p.Primary)
	secondary := colorHexPtr(p.Secondary)
	muted := colorHexPtr(p.Muted)
	surface := colorHexPtr(p.Surface)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = surface
	cfg.H2.Color = primary
	cfg.H3.Color = primary
	cfg.H4.Color = primary
	cfg.H5.Color = primary
	cfg.H6.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	cfg.Table.Color = fg

	return cfg
}
