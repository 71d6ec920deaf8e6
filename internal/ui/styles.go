// Package ui provides consistent styling for the vrkit CLI
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/math/f64"
)

// Color palette - consistent across the application
var (
	ColorPrimary = lipgloss.Color("39")  // Bright blue
	ColorSuccess = lipgloss.Color("82")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorInfo    = lipgloss.Color("86")  // Cyan

	ColorText   = lipgloss.Color("252") // Light gray
	ColorSubtle = lipgloss.Color("241") // Medium gray
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SubheaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Width(12)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1)
)

// Icons
var (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconViewer  = "◉"
	IconEye     = "·"
)

// FormatHeader renders a section title followed by a separator.
func FormatHeader(title string) string {
	return HeaderStyle.Render(title) + "\n" + CreateSeparator(50, "─")
}

// FormatKeyValue renders an aligned "label value" line.
func FormatKeyValue(label string, value interface{}) string {
	return "  " + LabelStyle.Render(label) + ValueStyle.Render(fmt.Sprint(value))
}

// FormatResult renders a success or failure line.
func FormatResult(ok bool, msg string) string {
	if ok {
		return SuccessStyle.Render(IconSuccess) + " " + msg
	}
	return ErrorStyle.Render(IconError) + " " + msg
}

// FormatVec3 prints a vector in meters with millimeter precision.
func FormatVec3(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}

// FormatMatrix renders a row-major 4x4 matrix inside a box.
func FormatMatrix(m f64.Mat4) string {
	rows := make([]string, 4)
	for r := 0; r < 4; r++ {
		cells := make([]string, 4)
		for c := 0; c < 4; c++ {
			cells[c] = fmt.Sprintf("%9.4f", m[r*4+c])
		}
		rows[r] = strings.Join(cells, " ")
	}
	return BoxStyle.Render(strings.Join(rows, "\n"))
}

// CreateSeparator creates a horizontal line separator
func CreateSeparator(width int, char string) string {
	if width <= 0 {
		width = 50
	}
	if char == "" {
		char = "─"
	}
	return lipgloss.NewStyle().
		Foreground(ColorSubtle).
		Render(strings.Repeat(char, width))
}
