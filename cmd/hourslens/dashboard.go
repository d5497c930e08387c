package main

import (
	"errors"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/janekbaraniewski/hourslens/internal/chart"
	"github.com/janekbaraniewski/hourslens/internal/tui"
)

var errNoTerminal = errors.New("the interactive chart needs a terminal; use \"hourslens bins\" or \"hourslens export\" instead")

func runDashboard(l chart.Layout, path string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}
	model := tui.NewModel(l, tui.Options{Source: filepath.Base(path)})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := program.Run()
	return err
}
