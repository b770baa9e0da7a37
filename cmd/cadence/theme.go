package main

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorSubtext0)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	rowStyle       = lipgloss.NewStyle().Foreground(colorText)
	dimStyle       = lipgloss.NewStyle().Foreground(colorOverlay0)
	barFullStyle   = lipgloss.NewStyle().Foreground(colorTeal)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorSurface1)
	stateStyle     = lipgloss.NewStyle().Foreground(colorMauve)
	warnStyle      = lipgloss.NewStyle().Foreground(colorYellow)
	errorStyle     = lipgloss.NewStyle().Foreground(colorRed)
	remoteOnStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	statusBarStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0).Padding(0, 1)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
)
