package app

import (
	"errors"
	"flag"
	"io"
	"runtime"

	"go.uber.org/multierr"

	"github.com/kobzarvs/sxcedit/internal/config"
	"github.com/kobzarvs/sxcedit/internal/editor"
	"github.com/kobzarvs/sxcedit/internal/logger"
	"github.com/kobzarvs/sxcedit/internal/render"
	"github.com/kobzarvs/sxcedit/internal/terminal"
)

// App is the top-level runtime for sxcedit.
type App struct {
	args []string
}

type options struct {
	raw     bool
	backend string
	path    string
}

func New(args []string) *App {
	return &App{args: args}
}

func parseArgs(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("sxcedit", flag.ContinueOnError)
	fs.BoolVar(&opts.raw, "raw", false, "start in raw mode, echoing input bytes")
	fs.StringVar(&opts.backend, "backend", "", "terminal backend: tcell or ansi")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.path = fs.Arg(0)
	return opts, nil
}

func (a *App) Run() (err error) {
	runtime.LockOSThread()
	opts, err := parseArgs(a.args)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.backend != "" {
		cfg.Editor.Backend = opts.backend
	}

	if err := logger.Init(cfg.Editor.Debug); err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, logger.Close()) }()
	logger.Info("starting", "backend", cfg.Editor.Backend, "capacity", cfg.Editor.Capacity)

	ed, err := editor.New(cfg, nil)
	if err != nil {
		return err
	}
	if opts.raw {
		ed.EnterRaw()
	}
	if opts.path != "" {
		if err := ed.Open(opts.path); err != nil {
			return err
		}
	}

	scr, err := terminal.New(cfg)
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, scr.Fini()) }()

	return Loop(ed, scr, cfg.Editor.TabWidth)
}

// Loop draws, reads a batch and processes it until the editor asks to
// terminate, input ends, or the arena runs out of capacity.
func Loop(ed *editor.Editor, scr terminal.Screen, tabWidth int) error {
	for {
		w, h := scr.Size()
		scr.Draw(render.Build(ed, w, h, tabWidth))

		batch, err := scr.ReadBatch()
		if errors.Is(err, io.EOF) {
			logger.Info("input closed")
			return nil
		}
		if err != nil {
			return err
		}
		sig, err := ed.Process(batch)
		if err != nil {
			return err
		}
		if sig == editor.Terminate {
			logger.Info("terminate requested")
			return nil
		}
	}
}
