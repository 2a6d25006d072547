package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/term"

	"github.com/ingyamilmolinar/holostack/core/engine"
	"github.com/ingyamilmolinar/holostack/core/model"
	"github.com/ingyamilmolinar/holostack/internal/config"
	game_log "github.com/ingyamilmolinar/holostack/internal/log"
	"github.com/ingyamilmolinar/holostack/internal/tui"
	"github.com/ingyamilmolinar/holostack/internal/ui"
)

var errNoTTY = errors.New("terminal navigator needs a terminal on stdin")

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	terminal := wantTerminal(cfg.Headless, runtime.GOOS, os.Getenv)
	logger, closeLog, err := openLogger(cfg.Logging, terminal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg, terminal, logger); err != nil {
		logger.Errorf("[MAIN] %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config, terminal bool, logger *game_log.Logger) error {
	catalog, err := loadCatalog(cfg.Catalog, logger)
	if err != nil {
		return err
	}
	scene := engine.NewScene(catalog, cfg.Scene, logger)
	openAtStart(scene, cfg.Open, logger)

	if terminal {
		return runTerminal(scene, logger)
	}

	g := ui.New(scene, ui.Options{RowYaw: cfg.Window.RowYaw}, logger)
	startPanel(g)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("holostack")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		logger.Warnf("[MAIN] graphics host failed, using the terminal navigator: %v", err)
		scene.OnSelect, scene.OnDismiss = nil, nil
		if cfg.Logging.FilePath == "" {
			logger.SetLevel(game_log.LevelNone)
		}
		return runTerminal(scene, logger)
	}
	return nil
}

func runTerminal(scene *engine.Scene, logger *game_log.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNoTTY
	}
	logger.Infof("[MAIN] starting terminal navigator")
	return tui.Run(scene, logger)
}

// wantTerminal reports whether to skip the graphics host: on request, or on
// Linux when no display server is advertised.
func wantTerminal(headless bool, goos string, getenv func(string) string) bool {
	if headless {
		return true
	}
	return goos == "linux" && getenv("DISPLAY") == "" && getenv("WAYLAND_DISPLAY") == ""
}

// openLogger writes to the configured file, or to stderr. The terminal host
// owns the screen, so without a file its logs are dropped.
func openLogger(cfg config.Logging, terminal bool) (*game_log.Logger, func(), error) {
	if cfg.FilePath != "" {
		f, err := game_log.OpenFile(cfg.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return game_log.New(f, cfg.Level), func() { f.Close() }, nil
	}
	var out io.Writer = os.Stderr
	if terminal {
		out = io.Discard
	}
	return game_log.New(out, cfg.Level), func() {}, nil
}

func loadCatalog(path string, logger *game_log.Logger) (*model.Catalog, error) {
	if path == "" {
		return model.DefaultCatalog(), nil
	}
	c, err := model.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	logger.Infof("[MAIN] loaded %d categories from %s", c.Len(), path)
	return c, nil
}

func openAtStart(scene *engine.Scene, query string, logger *game_log.Logger) {
	if query == "" {
		return
	}
	id, ok := scene.Catalog().Find(query)
	if !ok {
		logger.Warnf("[MAIN] -open %q matched no card", query)
		return
	}
	scene.Select(id)
}
