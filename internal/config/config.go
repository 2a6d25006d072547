package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ingyamilmolinar/holostack/core/engine"
	game_log "github.com/ingyamilmolinar/holostack/internal/log"
)

// Config captures runtime configuration for the application.
type Config struct {
	Scene   engine.Config
	Window  Window
	Logging Logging
	Catalog string // JSON catalog path; empty uses the built-in catalog
	Open    string // fuzzy query for a card to open at start
	// Headless skips the graphics host and runs the terminal navigator.
	Headless bool
}

type Window struct {
	Width  int
	Height int
	RowYaw float64 // radians about Y applied to every row
}

type Logging struct {
	Level    game_log.Level
	FilePath string
}

const (
	envCatalog        = "HOLOSTACK_CATALOG"
	envWidth          = "HOLOSTACK_WIDTH"
	envHeight         = "HOLOSTACK_HEIGHT"
	envHeadless       = "HOLOSTACK_HEADLESS"
	envOpen           = "HOLOSTACK_OPEN"
	envLogLevel       = "HOLOSTACK_LOG_LEVEL"
	envLogFile        = "HOLOSTACK_LOG_FILE"
	envRowSpacing     = "HOLOSTACK_ROW_SPACING"
	envCardSpacing    = "HOLOSTACK_CARD_SPACING"
	envRowYaw         = "HOLOSTACK_ROW_YAW"
	envDragStep       = "HOLOSTACK_DRAG_STEP"
	envTouchThreshold = "HOLOSTACK_TOUCH_THRESHOLD"
	envWheelInterval  = "HOLOSTACK_WHEEL_INTERVAL"
	envStackRate      = "HOLOSTACK_STACK_RATE"
	envTiltRate       = "HOLOSTACK_TILT_RATE"
	envHoverRate      = "HOLOSTACK_HOVER_RATE"
	envPointerRate    = "HOLOSTACK_POINTER_RATE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Flags win over
// environment variables, which win over defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	def := engine.DefaultConfig()

	fs := flag.NewFlagSet("holostack", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	catalog := fs.String("catalog", envOrDefault(env, envCatalog, ""), "path to a JSON catalog (default: built-in)")
	width := fs.Int("width", envOrInt(env, envWidth, 1280), "window width in pixels")
	height := fs.Int("height", envOrInt(env, envHeight, 720), "window height in pixels")
	headless := fs.Bool("headless", envOrBool(env, envHeadless, false), "run the terminal navigator instead of the 3D scene")
	open := fs.String("open", envOrDefault(env, envOpen, ""), "open the detail view of the best fuzzy match at start")
	level := fs.String("log-level", envOrDefault(env, envLogLevel, "INFO"), "DEBUG, INFO, WARN, ERROR or NONE")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	rowSpacing := fs.Float64("row-spacing", envOrFloat(env, envRowSpacing, def.Motion.RowSpacing), "world units between rows")
	cardSpacing := fs.Float64("card-spacing", envOrFloat(env, envCardSpacing, def.Motion.CardSpacing), "world units between cards")
	rowYaw := fs.Float64("row-yaw", envOrFloat(env, envRowYaw, -0.18), "row shear angle in radians")
	dragStep := fs.Float64("drag-step", envOrFloat(env, envDragStep, def.Input.DragStep), "pointer drag pixels per category step")
	touch := fs.Float64("touch-threshold", envOrFloat(env, envTouchThreshold, def.Input.TouchThreshold), "touch pixels before a swipe counts")
	wheel := fs.Duration("wheel-interval", envOrDuration(env, envWheelInterval, def.Input.WheelInterval), "minimum time between wheel steps")
	stackRate := fs.Float64("stack-rate", envOrFloat(env, envStackRate, def.Motion.StackRate), "stack and row damping rate (1/s)")
	tiltRate := fs.Float64("tilt-rate", envOrFloat(env, envTiltRate, def.Motion.TiltRate), "card tilt damping rate (1/s)")
	hoverRate := fs.Float64("hover-rate", envOrFloat(env, envHoverRate, def.Feedback.HoverRate), "hover glow damping rate (1/s)")
	pointerRate := fs.Float64("pointer-rate", envOrFloat(env, envPointerRate, def.Feedback.PointerRate), "hotspot damping rate (1/s)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lvl, err := game_log.ParseLevel(*level)
	if err != nil {
		return Config{}, err
	}

	scene := def
	scene.Motion.RowSpacing = *rowSpacing
	scene.Motion.CardSpacing = *cardSpacing
	scene.Motion.StackRate = *stackRate
	scene.Motion.RowRate = *stackRate
	scene.Motion.TiltRate = *tiltRate
	scene.Input.DragStep = *dragStep
	scene.Input.TouchThreshold = *touch
	scene.Input.WheelInterval = *wheel
	scene.Feedback.HoverRate = *hoverRate
	scene.Feedback.PointerRate = *pointerRate

	return Config{
		Scene:    scene,
		Window:   Window{Width: *width, Height: *height, RowYaw: *rowYaw},
		Logging:  Logging{Level: lvl, FilePath: *logFile},
		Catalog:  *catalog,
		Open:     *open,
		Headless: *headless,
	}, nil
}

// Validate rejects values the scene cannot work with.
func Validate(cfg Config) error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be > 0 (got %v)", name, v))
		}
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive (got %dx%d)", cfg.Window.Width, cfg.Window.Height))
	}
	m, in, fb := cfg.Scene.Motion, cfg.Scene.Input, cfg.Scene.Feedback
	positive("row-spacing", m.RowSpacing)
	positive("card-spacing", m.CardSpacing)
	positive("stack-rate", m.StackRate)
	positive("tilt-rate", m.TiltRate)
	positive("drag-step", in.DragStep)
	positive("touch-threshold", in.TouchThreshold)
	positive("hover-rate", fb.HoverRate)
	positive("pointer-rate", fb.PointerRate)
	if in.WheelInterval <= 0 {
		errs = append(errs, fmt.Errorf("wheel-interval must be > 0 (got %s)", in.WheelInterval))
	}
	return errors.Join(errs...)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(env map[string]string, key string, fallback float64) float64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "holostack: %v\n", err)
		os.Exit(2)
	}
	return cfg
}
