package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// Mode selects the renderer variant, fixed at startup.
type Mode int

const (
	ModeDashboard Mode = iota
	ModeText
	ModeRecord
)

// Config carries runtime options for ntm.
type Config struct {
	Iface    string
	Mode     Mode
	Interval time.Duration
	Count    int // ticks to run; 0 means until interrupted
	UseEMA   bool
	Alpha    float64
	View     string // raw | ema | both
	List     bool
}

func Default() Config {
	return Config{
		Iface:    "all",
		Mode:     ModeDashboard,
		Interval: time.Second,
		Count:    0,
		UseEMA:   true,
		Alpha:    0.2,
		View:     "both",
	}
}

// FromFlags parses flags and environment overrides. Flag errors surface to
// the caller so the process can exit with usage instead of sampling.
func FromFlags(args []string) (Config, error) {
	cfg := Default()
	var plain, record, once, noEMA bool

	fs := flag.NewFlagSet("ntm", flag.ContinueOnError)
	fs.StringVar(&cfg.Iface, "iface", cfg.Iface, "interface name or 'all'")
	fs.BoolVar(&plain, "plain", false, "one human-readable line per tick")
	fs.BoolVar(&record, "json", false, "one JSON record per tick")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "refresh interval")
	fs.BoolVar(&once, "once", false, "run one tick and exit")
	fs.IntVar(&cfg.Count, "count", cfg.Count, "number of ticks (0 = until interrupted)")
	fs.BoolVar(&noEMA, "no-ema", false, "disable rate smoothing")
	fs.Float64Var(&cfg.Alpha, "ema-alpha", cfg.Alpha, "EMA smoothing factor in (0,1]")
	fs.StringVar(&cfg.View, "view", cfg.View, "dashboard series: raw|ema|both")
	fs.BoolVar(&cfg.List, "list", false, "list interface names and exit")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if v := os.Getenv("NTM_IFACE"); v != "" {
		cfg.Iface = v
	}
	if v := os.Getenv("NTM_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Interval = parsed
		} else if parsed, err2 := time.ParseDuration(v + "s"); err2 == nil {
			cfg.Interval = parsed
		}
	}

	switch {
	case plain && record:
		return cfg, fmt.Errorf("-plain and -json are mutually exclusive")
	case plain:
		cfg.Mode = ModeText
	case record:
		cfg.Mode = ModeRecord
	}
	cfg.UseEMA = !noEMA
	if once {
		cfg.Count = 1
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations the engine must never see.
func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("ema-alpha must be in (0,1], got %g", c.Alpha)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.Count < 0 {
		return fmt.Errorf("count must be >= 0, got %d", c.Count)
	}
	switch c.View {
	case "raw", "ema", "both":
	default:
		return fmt.Errorf("view must be raw, ema or both, got %q", c.View)
	}
	if c.Iface == "" {
		return fmt.Errorf("iface must not be empty")
	}
	return nil
}
