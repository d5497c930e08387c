package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/janekbaraniewski/hourslens/internal/chart"
	"github.com/janekbaraniewski/hourslens/internal/records"
)

// EnvPrefix prefixes environment overrides, e.g. HOURSLENS_CHART_WIDTH.
const EnvPrefix = "HOURSLENS"

type DataConfig struct {
	Path  string `json:"path" mapstructure:"path"`
	Sheet string `json:"sheet,omitempty" mapstructure:"sheet"`
	Table string `json:"table,omitempty" mapstructure:"table"`
}

type FilterConfig struct {
	MinHoursActual float64 `json:"min_hours_actual" mapstructure:"min_hours_actual"`
	MaxAbsDiff     float64 `json:"max_abs_diff" mapstructure:"max_abs_diff"`
}

type MarginConfig struct {
	Top    int `json:"top" mapstructure:"top"`
	Right  int `json:"right" mapstructure:"right"`
	Bottom int `json:"bottom" mapstructure:"bottom"`
	Left   int `json:"left" mapstructure:"left"`
}

// ChartConfig sizes the terminal chart in cells.
type ChartConfig struct {
	Width      int          `json:"width" mapstructure:"width"`
	Height     int          `json:"height" mapstructure:"height"`
	Thresholds int          `json:"thresholds" mapstructure:"thresholds"`
	BarPadding float64      `json:"bar_padding" mapstructure:"bar_padding"`
	Margin     MarginConfig `json:"margin" mapstructure:"margin"`
}

type Config struct {
	Theme  string       `json:"theme" mapstructure:"theme"`
	Data   DataConfig   `json:"data" mapstructure:"data"`
	Filter FilterConfig `json:"filter" mapstructure:"filter"`
	Chart  ChartConfig  `json:"chart" mapstructure:"chart"`
}

func DefaultConfig() Config {
	return Config{
		Theme: "Catppuccin Mocha",
		Data:  DataConfig{Path: "data.csv"},
		Filter: FilterConfig{
			MinHoursActual: records.DefaultMinHoursActual,
			MaxAbsDiff:     records.DefaultMaxAbsDiff,
		},
		Chart: ChartConfig{
			Width:      100,
			Height:     32,
			Thresholds: 30,
			BarPadding: 1,
			Margin:     MarginConfig{Top: 6, Right: 2, Bottom: 4, Left: 4},
		},
	}
}

// ChartOptions converts the cell sizes into layout options.
func (c Config) ChartOptions() chart.Options {
	m := c.Chart.Margin
	return chart.Options{
		Dimensions: chart.Dimensions{
			Width:  float64(c.Chart.Width),
			Height: float64(c.Chart.Height),
			Margin: chart.Margin{
				Top:    float64(m.Top),
				Right:  float64(m.Right),
				Bottom: float64(m.Bottom),
				Left:   float64(m.Left),
			},
		},
		Thresholds: c.Chart.Thresholds,
		BarPadding: c.Chart.BarPadding,
		Overhang:   2,
		LabelGap:   1,
		LabelInset: 1,
		Filter: records.Thresholds{
			MinHoursActual: c.Filter.MinHoursActual,
			MaxAbsDiff:     c.Filter.MaxAbsDiff,
		},
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "hourslens")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hourslens")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

// LoadEnvFiles loads .env files into the process environment. Missing files
// are skipped and variables that are already set win.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env", filepath.Join(ConfigDir(), ".env")}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config file at path with HOURSLENS_* environment
// overrides applied on top. A missing file yields the defaults.
func LoadFrom(path string) (Config, error) {
	return load(path, true)
}

func load(path string, withEnv bool) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v, cfg)
	if withEnv {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decoding config %s: %w", path, err)
	}
	normalize(&cfg)
	return cfg, nil
}

// setDefaults registers every key so that environment overrides apply even
// when the file does not mention them.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("data.path", cfg.Data.Path)
	v.SetDefault("data.sheet", cfg.Data.Sheet)
	v.SetDefault("data.table", cfg.Data.Table)
	v.SetDefault("filter.min_hours_actual", cfg.Filter.MinHoursActual)
	v.SetDefault("filter.max_abs_diff", cfg.Filter.MaxAbsDiff)
	v.SetDefault("chart.width", cfg.Chart.Width)
	v.SetDefault("chart.height", cfg.Chart.Height)
	v.SetDefault("chart.thresholds", cfg.Chart.Thresholds)
	v.SetDefault("chart.bar_padding", cfg.Chart.BarPadding)
	v.SetDefault("chart.margin.top", cfg.Chart.Margin.Top)
	v.SetDefault("chart.margin.right", cfg.Chart.Margin.Right)
	v.SetDefault("chart.margin.bottom", cfg.Chart.Margin.Bottom)
	v.SetDefault("chart.margin.left", cfg.Chart.Margin.Left)
}

func normalize(cfg *Config) {
	def := DefaultConfig()
	if cfg.Theme == "" {
		cfg.Theme = def.Theme
	}
	if cfg.Filter.MinHoursActual < 0 {
		cfg.Filter.MinHoursActual = def.Filter.MinHoursActual
	}
	if cfg.Filter.MaxAbsDiff <= 0 {
		cfg.Filter.MaxAbsDiff = def.Filter.MaxAbsDiff
	}
	if cfg.Chart.Width <= 0 {
		cfg.Chart.Width = def.Chart.Width
	}
	if cfg.Chart.Height <= 0 {
		cfg.Chart.Height = def.Chart.Height
	}
	if cfg.Chart.Thresholds <= 0 {
		cfg.Chart.Thresholds = def.Chart.Thresholds
	}
	if cfg.Chart.BarPadding < 0 {
		cfg.Chart.BarPadding = def.Chart.BarPadding
	}
	m := &cfg.Chart.Margin
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 ||
		m.Left+m.Right >= cfg.Chart.Width || m.Top+m.Bottom >= cfg.Chart.Height {
		*m = def.Chart.Margin
	}
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveTheme persists a theme name into the config file (read-modify-write).
func SaveTheme(theme string) error {
	return SaveThemeTo(ConfigPath(), theme)
}

// SaveThemeTo rewrites the file contents only; environment overrides in
// effect for this process are not persisted.
func SaveThemeTo(path string, theme string) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := load(path, false)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.Theme = theme
	return SaveTo(path, cfg)
}
