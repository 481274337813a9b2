package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorPurple    = lipgloss.Color("#8524a6")
	colorRed       = lipgloss.Color("#FF5F5F")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPurple).
			MarginTop(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	labelFocusedStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				Bold(true)

	inputBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorDarkGray).
			Padding(0, 1)

	inputBoxFocusedStyle = inputBoxStyle.
				BorderForeground(colorPurple)

	fieldErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			PaddingLeft(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	inputStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorPurple)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true).
			MarginTop(1)
)

const logo = `
  ┏━┓┏━┓┏━┓╺┳╸╻ ╻╻  ╻┏┓╻┏━╸
  ┣━┛┣━┫┣┳┛ ┃ ┗┳┛┃  ┃┃┗┫┣╸
  ╹  ╹ ╹╹┗╸ ╹  ╹ ┗━╸╹╹ ╹┗━╸
`
