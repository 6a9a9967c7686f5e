// Package style holds the colors and icons shared by everything cachegen prints.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Slate  = lipgloss.Color("#667085")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)

// StatusIcon maps a unit outcome name to the icon printed next to its path.
func StatusIcon(status string) string {
	switch status {
	case "written":
		return Check
	case "removed":
		return Cross
	case "skipped":
		return Circle
	case "failed":
		return Warning
	case "unchanged":
		return Tilde
	default:
		return Dot
	}
}
