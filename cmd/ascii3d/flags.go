package main

import (
	"flag"

	"github.com/lixenwraith/ascii3d/config"
)

// cliFlags override config file values; only flags given on the command line apply
type cliFlags struct {
	config     string
	backend    string
	shape      string
	projection string
	fps        int
	sound      bool
	debug      bool
	watch      bool
}

func (f *cliFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "Config file (.toml, .yaml); default "+config.DefaultPath+" if present")
	fs.StringVar(&f.backend, "backend", "", "Terminal backend: ansi, tcell")
	fs.StringVar(&f.shape, "shape", "", "Initial shape: cube, prism")
	fs.StringVar(&f.projection, "projection", "", "Projection: perspective, orthographic")
	fs.IntVar(&f.fps, "fps", 0, "Frames per second")
	fs.BoolVar(&f.sound, "sound", false, "Enable audio cues")
	fs.BoolVar(&f.debug, "debug", false, "Write logs to logs/ascii3d.log")
	fs.BoolVar(&f.watch, "watch", false, "Reload the config file when it changes")
}

// apply copies explicitly set flags into cfg and revalidates
func (f *cliFlags) apply(cfg *config.Config, fs *flag.FlagSet) error {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "backend":
			cfg.Display.Backend = f.backend
		case "shape":
			cfg.Render.Shape = f.shape
		case "projection":
			cfg.Render.Projection = f.projection
		case "fps":
			cfg.Display.FPS = f.fps
		case "sound":
			cfg.Audio.Enabled = f.sound
		}
	})
	return cfg.Validate()
}
