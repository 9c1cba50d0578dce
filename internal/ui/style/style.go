// Package style provides the colours and icons shared by the installer's output.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Iris   = lipgloss.Color("#8B5CF6")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Cached  = "↺"
	Dot     = "●"
)

// Step renders a finished install step line.
func Step(icon, name, detail string) string {
	line := icon + " " + name
	if detail != "" {
		line += " (" + detail + ")"
	}
	return line
}
