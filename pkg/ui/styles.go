// Package ui provides styled CLI output for the eslower commands.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorAccent  = lipgloss.Color("#56C3F4")
	colorSuccess = lipgloss.Color("#5AF78E")
	colorWarning = lipgloss.Color("#F7DC6F")
	colorError   = lipgloss.Color("#FF6B9D")
	colorSubtle  = lipgloss.Color("#7F849C")
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	styleVersion = lipgloss.NewStyle().
			Foreground(colorSubtle).
			Italic(true)

	styleSection = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorSubtle)
)

// PrintHeader renders the boxed tool banner.
func PrintHeader(version string) {
	fmt.Println(styleHeader.Render("eslower"))
	fmt.Println(styleVersion.Render("  v" + version))
	fmt.Println()
}

// Section prints a section title.
func Section(title string) {
	fmt.Println(styleSection.Render(title))
}

// Success prints a success line.
func Success(format string, args ...interface{}) {
	fmt.Println(styleSuccess.Render("✓ ") + fmt.Sprintf(format, args...))
}

// Warning prints a warning line.
func Warning(format string, args ...interface{}) {
	fmt.Println(styleWarning.Render("! ") + fmt.Sprintf(format, args...))
}

// Error prints an error line.
func Error(format string, args ...interface{}) {
	fmt.Println(styleError.Render("✗ ") + fmt.Sprintf(format, args...))
}

// Muted prints a dim detail line.
func Muted(format string, args ...interface{}) {
	fmt.Println(styleMuted.Render(fmt.Sprintf(format, args...)))
}
