// Command ascii3d renders a rotating shaded solid as ASCII art in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/ascii3d/audio"
	"github.com/lixenwraith/ascii3d/config"
	"github.com/lixenwraith/ascii3d/core"
	"github.com/lixenwraith/ascii3d/engine"
	"github.com/lixenwraith/ascii3d/terminal"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Panic Recovery: Ensure terminal is reset even if the renderer crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	var fl cliFlags
	fl.register(flag.CommandLine)
	flag.Parse()

	logFile := setupLogging(fl.debug)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, path, err := loadConfig(fl.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ascii3d: %v\n", err)
		return 2
	}
	if err := fl.apply(&cfg, flag.CommandLine); err != nil {
		fmt.Fprintf(os.Stderr, "ascii3d: %v\n", err)
		return 2
	}

	// Query before raw mode so the reply does not land in the key stream
	dark := terminal.DarkBackground(os.Stdout)

	term, err := openTerminal(cfg.Display.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ascii3d: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	core.RegisterTerminal(term)
	defer core.RegisterTerminal(nil)
	// Normal exit terminal cleanup
	defer term.Fini()

	player := openPlayer(cfg.Audio)
	defer player.Close()

	a, err := newApp(cfg, term, player, dark)
	if err != nil {
		term.Fini()
		fmt.Fprintf(os.Stderr, "ascii3d: %v\n", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if fl.watch {
		if w, err := config.NewWatcher(path); err != nil {
			log.Printf("[config] watch disabled: %v", err)
		} else {
			a.updates = w.Updates()
			a.reloadErrs = w.Errors()
			a.overrides = func(c *config.Config) error { return fl.apply(c, flag.CommandLine) }
			core.Go(func() { w.Run(ctx) })
			log.Printf("[config] watching %s", w.Path())
		}
	}

	sched := engine.NewScheduler(frameInterval(cfg.Display.FPS), a)
	a.setInterval = sched.SetInterval

	log.Printf("[main] started backend=%s size=%dx%d fps=%d", cfg.Display.Backend, a.fb.Width(), a.fb.Height(), cfg.Display.FPS)
	if err := sched.Run(ctx); err != nil {
		term.Fini()
		fmt.Fprintf(os.Stderr, "ascii3d: %v\n", err)
		return 1
	}
	log.Printf("[main] exit after %d frames", sched.Frames())
	return 0
}

// loadConfig reads an explicit path strictly and the default path only if present
func loadConfig(path string) (config.Config, string, error) {
	if path != "" {
		cfg, err := config.Load(path)
		return cfg, path, err
	}
	cfg, found, err := config.LoadOptional(config.DefaultPath)
	if found {
		log.Printf("[config] loaded %s", config.DefaultPath)
	}
	return cfg, config.DefaultPath, err
}

func openTerminal(backend string) (terminal.Terminal, error) {
	switch backend {
	case config.BackendTcell:
		return terminal.NewTcell(terminal.WithLauncher(core.Go))
	default:
		return terminal.New(terminal.WithLauncher(core.Go)), nil
	}
}

// openPlayer falls back to a silent player when audio is off or the device is unavailable
func openPlayer(a config.Audio) audio.Player {
	if !a.Enabled {
		return audio.NewSilentPlayer()
	}
	p, err := audio.NewPlayer(a.Volume, false)
	if err != nil {
		log.Printf("[audio] init failed, running silent: %v", err)
		return audio.NewSilentPlayer()
	}
	return p
}
