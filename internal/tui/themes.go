package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// HOURSLENS_THEME_DIR can point to one or more additional theme directories
// (path-list separated, e.g. ":" on unix, ";" on Windows).
const themeDirEnvVar = "HOURSLENS_THEME_DIR"

const defaultThemeName = "Catppuccin Mocha"

// Theme is the color token set of the chart.
//
// External themes are JSON files with matching snake_case fields, for example
// {"name":"My Theme","base":"#111111","under":"#FF5555",...}.
type Theme struct {
	Name string `json:"name"`
	Icon string `json:"icon"`

	Base    lipgloss.Color `json:"base"`
	Surface lipgloss.Color `json:"surface"`
	Text    lipgloss.Color `json:"text"`
	Subtext lipgloss.Color `json:"subtext"`
	Dim     lipgloss.Color `json:"dim"`
	Accent  lipgloss.Color `json:"accent"`

	// Under and Over color bars left and right of zero.
	Under     lipgloss.Color `json:"under"`
	Over      lipgloss.Color `json:"over"`
	Highlight lipgloss.Color `json:"highlight"`
	Mean      lipgloss.Color `json:"mean"`
}

var (
	themeMu        sync.RWMutex
	themes         []Theme
	activeThemeIdx int
)

func init() {
	themes = builtinThemes()
	activeThemeIdx = defaultThemeIndex(themes)
	applyTheme(themes[activeThemeIdx])
}

func builtinThemes() []Theme {
	return []Theme{
		{
			Name: "Catppuccin Mocha", Icon: "🐱",
			Base: "#1E1E2E", Surface: "#45475A", Text: "#CDD6F4", Subtext: "#A6ADC8", Dim: "#585B70",
			Accent: "#CBA6F7", Under: "#F38BA8", Over: "#A6E3A1", Highlight: "#F9E2AF", Mean: "#89B4FA",
		},
		{
			Name: "Gruvbox", Icon: "🌻",
			Base: "#282828", Surface: "#504945", Text: "#EBDBB2", Subtext: "#D5C4A1", Dim: "#665C54",
			Accent: "#D3869B", Under: "#FB4934", Over: "#B8BB26", Highlight: "#FABD2F", Mean: "#83A598",
		},
		{
			Name: "Dracula", Icon: "🧛",
			Base: "#282A36", Surface: "#6272A4", Text: "#F8F8F2", Subtext: "#BFBFBF", Dim: "#6272A4",
			Accent: "#BD93F9", Under: "#FF5555", Over: "#50FA7B", Highlight: "#F1FA8C", Mean: "#8BE9FD",
		},
		{
			Name: "Nord", Icon: "❄",
			Base: "#2E3440", Surface: "#434C5E", Text: "#ECEFF4", Subtext: "#D8DEE9", Dim: "#4C566A",
			Accent: "#B48EAD", Under: "#BF616A", Over: "#A3BE8C", Highlight: "#EBCB8B", Mean: "#88C0D0",
		},
		{
			Name: "Tokyo Night", Icon: "🌃",
			Base: "#1A1B26", Surface: "#414868", Text: "#C0CAF5", Subtext: "#A9B1D6", Dim: "#565F89",
			Accent: "#BB9AF7", Under: "#F7768E", Over: "#9ECE6A", Highlight: "#E0AF68", Mean: "#7DCFFF",
		},
		{
			Name: "Solarized Dark", Icon: "🌅",
			Base: "#002B36", Surface: "#0E3A45", Text: "#93A1A1", Subtext: "#839496", Dim: "#586E75",
			Accent: "#D33682", Under: "#DC322F", Over: "#859900", Highlight: "#B58900", Mean: "#268BD2",
		},
		{
			Name: "Grayscale", Icon: "⬛",
			Base: "#000000", Surface: "#2A2A2A", Text: "#F5F5F5", Subtext: "#D6D6D6", Dim: "#A8A8A8",
			Accent: "#FFFFFF", Under: "#AAAAAA", Over: "#D0D0D0", Highlight: "#FFFFFF", Mean: "#E8E8E8",
		},
	}
}

func defaultThemeIndex(all []Theme) int {
	for i, t := range all {
		if strings.EqualFold(strings.TrimSpace(t.Name), defaultThemeName) {
			return i
		}
	}
	return 0
}

func normalizeTheme(in Theme) Theme {
	trim := func(c lipgloss.Color) lipgloss.Color { return lipgloss.Color(strings.TrimSpace(string(c))) }

	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	if in.Icon == "" {
		in.Icon = "🎨"
	}
	for _, c := range in.colors() {
		*c.value = trim(*c.value)
	}
	return in
}

type themeColor struct {
	name  string
	value *lipgloss.Color
}

func (t *Theme) colors() []themeColor {
	return []themeColor{
		{"base", &t.Base}, {"surface", &t.Surface}, {"text", &t.Text},
		{"subtext", &t.Subtext}, {"dim", &t.Dim}, {"accent", &t.Accent},
		{"under", &t.Under}, {"over", &t.Over}, {"highlight", &t.Highlight}, {"mean", &t.Mean},
	}
}

func (t Theme) validate() error {
	if t.Name == "" {
		return fmt.Errorf("missing required field: name")
	}
	var missing []string
	for _, c := range t.colors() {
		if strings.TrimSpace(string(*c.value)) == "" {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required color fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// themeSearchDirs lists <configDir>/themes followed by the HOURSLENS_THEME_DIR
// entries, cleaned and without repeats.
func themeSearchDirs(configDir string) []string {
	var dirs []string
	if strings.TrimSpace(configDir) != "" {
		dirs = append(dirs, filepath.Join(configDir, "themes"))
	}
	dirs = append(dirs, filepath.SplitList(os.Getenv(themeDirEnvVar))...)

	dirs = lo.FilterMap(dirs, func(d string, _ int) (string, bool) {
		d = strings.TrimSpace(d)
		return filepath.Clean(d), d != ""
	})
	return lo.Uniq(dirs)
}

// loadThemesFromDir reads every *.json theme in dir in case-insensitive name
// order. A missing dir is not an error.
func loadThemesFromDir(dir string) ([]Theme, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.[jJ][sS][oO][nN]"))
	if err != nil {
		return nil, fmt.Errorf("scan theme dir %s: %w", dir, err)
	}
	slices.SortFunc(paths, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	var loaded []Theme
	var errs []error
	for _, path := range paths {
		t, err := readThemeFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		loaded = append(loaded, t)
	}
	return loaded, errors.Join(errs...)
}

func readThemeFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme %s: %w", path, err)
	}
	var t Theme
	if err := json.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parsing theme %s: %w", path, err)
	}
	t = normalizeTheme(t)
	if err := t.validate(); err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}

// mergeThemes appends extra to base; a theme with an existing name replaces it.
func mergeThemes(base, extra []Theme) []Theme {
	merged := slices.Clone(base)
	for _, t := range extra {
		i := slices.IndexFunc(merged, func(m Theme) bool { return strings.EqualFold(m.Name, t.Name) })
		if i >= 0 {
			merged[i] = t
			continue
		}
		merged = append(merged, t)
	}
	return merged
}

func setActiveThemeByNameLocked(name string) bool {
	name = strings.TrimSpace(name)
	i := slices.IndexFunc(themes, func(t Theme) bool { return strings.EqualFold(t.Name, name) })
	if name == "" || i < 0 {
		return false
	}
	activeThemeIdx = i
	applyTheme(themes[i])
	return true
}

// LoadThemes reloads the catalog from the built-ins plus JSON files found in
// <configDir>/themes and HOURSLENS_THEME_DIR. Invalid files are skipped and
// reported in the returned error; the valid ones stay available.
func LoadThemes(configDir string) error {
	themeMu.Lock()
	defer themeMu.Unlock()

	current := themes[activeThemeIdx].Name
	next := builtinThemes()
	var errs []error
	for _, dir := range themeSearchDirs(configDir) {
		loaded, err := loadThemesFromDir(dir)
		if err != nil {
			errs = append(errs, err)
		}
		next = mergeThemes(next, loaded)
	}

	themes = next
	if !setActiveThemeByNameLocked(current) {
		activeThemeIdx = defaultThemeIndex(themes)
		applyTheme(themes[activeThemeIdx])
	}
	return errors.Join(errs...)
}

func AvailableThemes() []Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return append([]Theme(nil), themes...)
}

func ActiveTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return themes[activeThemeIdx]
}

// CycleTheme activates the next theme and returns its name.
func CycleTheme() string {
	themeMu.Lock()
	defer themeMu.Unlock()

	activeThemeIdx = (activeThemeIdx + 1) % len(themes)
	applyTheme(themes[activeThemeIdx])
	return themes[activeThemeIdx].Name
}

func ThemeName() string {
	t := ActiveTheme()
	if t.Icon == "" {
		return t.Name
	}
	return t.Icon + " " + t.Name
}

func SetThemeByName(name string) bool {
	themeMu.Lock()
	defer themeMu.Unlock()
	return setActiveThemeByNameLocked(name)
}
