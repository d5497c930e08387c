package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/janekbaraniewski/hourslens/internal/chart"
	"github.com/janekbaraniewski/hourslens/internal/config"
	"github.com/janekbaraniewski/hourslens/internal/hover"
	"github.com/janekbaraniewski/hourslens/internal/logging"
)

const emptyText = "No tasks in range"

// Options configures NewModel.
type Options struct {
	// Source names the loaded data in the header.
	Source string
	// PersistTheme saves the theme picked with "t". Defaults to
	// config.SaveTheme.
	PersistTheme func(name string) error
}

// Model is the interactive histogram. The layout is fixed for the lifetime of
// the model; only hover and theme state change.
type Model struct {
	layout  chart.Layout
	surface *tooltipSurface
	machine *hover.Machine

	source       string
	persistTheme func(string) error

	showHelp bool
	status   string
	width    int
	height   int
}

func NewModel(l chart.Layout, opts Options) Model {
	surface := newTooltipSurface()
	persist := opts.PersistTheme
	if persist == nil {
		persist = config.SaveTheme
	}
	return Model{
		layout:       l,
		surface:      surface,
		machine:      hover.NewMachine(hover.NewContext(l, surface)),
		source:       opts.Source,
		persistTheme: persist,
	}
}

type themePersistedMsg struct {
	err error
}

func (m Model) persistThemeCmd(themeName string) tea.Cmd {
	persist := m.persistTheme
	return func() tea.Msg {
		err := persist(themeName)
		if err != nil {
			logging.Global().Warn().Err(err).Str("theme", themeName).Msg("theme persist failed")
		}
		return themePersistedMsg{err: err}
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case themePersistedMsg:
		if msg.err != nil {
			m.status = "theme save failed"
		} else {
			m.status = "theme saved"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "t":
		name := CycleTheme()
		m.status = ""
		return m, m.persistThemeCmd(name)
	case "esc":
		m.machine.Leave()
	}
	return m, nil
}

// handleMouse maps the pointer cell to plot coordinates and feeds the hover
// machine. The cell center is used so a cell belongs to one bin only.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || tea.MouseEvent(msg).IsWheel() {
		return m, nil
	}
	margin := m.layout.Dimensions.Margin
	px := float64(msg.X) - margin.Left + 0.5
	py := float64(msg.Y) - margin.Top + 0.5
	i, over := m.layout.ListenerAt(px, py)
	m.machine.Track(i, over)
	return m, nil
}

func (m Model) frameSize() (int, int) {
	d := m.layout.Dimensions
	return int(math.Round(d.Width)), int(math.Round(d.Height))
}

func (m Model) View() string {
	w, h := m.frameSize()
	f := newFrame(w, h)

	f.put(1, 0, m.renderTitle(w-2))
	if m.layout.Empty() {
		msg := dimStyle.Render(emptyText)
		f.put((w-lipgloss.Width(msg))/2, h/2, msg)
	} else {
		f.put(1, 1, m.renderStats(w-2))
		renderHistogram(f, m.layout, m.surface.highlighted)
		if m.surface.highlighted >= 0 {
			placeTooltip(f, m.surface.tip, w)
		}
	}
	f.put(0, h-1, renderHelpLine(w, m.status))
	if m.showHelp {
		renderHelpOverlay(f, w, h)
	}

	view := f.String()
	if m.width > 0 && m.height > 0 {
		view = padToSize(view, m.width, m.height)
	}
	return view
}

func (m Model) renderTitle(w int) string {
	title := titleStyle.Render("Estimated vs actual hours")
	if m.source != "" {
		title += subtitleStyle.Render("  " + m.source)
	}
	return fitAnsiWidth(title, w)
}

func (m Model) renderStats(w int) string {
	s := m.layout.Stats
	parts := []string{
		fmt.Sprintf("%d of %d tasks", s.Kept, s.Input),
		fmt.Sprintf("%d duplicates", s.Duplicates),
		fmt.Sprintf("%d short", s.ShortTasks),
		fmt.Sprintf("%d out of range", s.OutOfRange),
	}
	if m.layout.HasMean {
		parts = append(parts, fmt.Sprintf("mean %+.2f h", m.layout.Mean))
	}
	return fitAnsiWidth(dimStyle.Render(strings.Join(parts, " · ")), w)
}

// padToSize clips or pads view to exactly w x h cells.
func padToSize(view string, w, h int) string {
	lines := strings.Split(view, "\n")
	out := make([]string, h)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = fitAnsiWidth(line, w)
	}
	return strings.Join(out, "\n")
}
