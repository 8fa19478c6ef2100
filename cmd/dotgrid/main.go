// Command dotgrid renders the pointer-reactive dot grid in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/dotgrid/audio"
	"github.com/lixenwraith/dotgrid/config"
	"github.com/lixenwraith/dotgrid/engine"
	"github.com/lixenwraith/dotgrid/host"
	"github.com/lixenwraith/dotgrid/logging"
	"github.com/lixenwraith/dotgrid/metrics"
	"github.com/lixenwraith/dotgrid/render"
	"github.com/lixenwraith/dotgrid/terminal"
)

type options struct {
	configPath string
	debug      bool
	audio      bool
	inactive   bool
}

func main() {
	// Panic Recovery: reset the terminal even if setup crashes before the loop owns it
	defer func() {
		if r := recover(); r != nil {
			host.WriteCrash(os.Stderr, "DOTGRID", r)
			os.Exit(1)
		}
	}()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "dotgrid",
		Short: "Pointer-reactive dot grid animation for the terminal",
		Long: `dotgrid draws a lattice of dots in the top of the terminal that swell and brighten
around the mouse pointer. Focus loss stops the animation and focus gain restarts it.

Keys: q, Esc, Ctrl+C quit; n simulates a navigation cycle; p toggles activation.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default $DOTGRID_CONFIG or ~/.config/dotgrid/config.toml)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "write debug logs to logs/dotgrid.log")
	cmd.Flags().BoolVar(&opts.audio, "audio", false, "play a chime when the pointer enters the grid")
	cmd.Flags().BoolVar(&opts.inactive, "inactive", false, "start with the animation deactivated")
	return cmd
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.audio {
		cfg.Audio.Enabled = true
	}

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	reg := prometheus.NewRegistry()
	met, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	// Callbacks and the event pump share one crash path that restores the terminal first
	crash := func(r any) {
		screen.Fini()
		host.WriteCrash(os.Stderr, "DOTGRID", r)
		os.Exit(1)
	}

	loop := host.NewLoop(cfg.Terminal.FrameInterval)
	loop.SetCrashHandler(crash)

	presenter := terminal.NewPresenter(screen, cfg.Engine.Color, cfg.Terminal.Background)
	raster := render.NewRaster(cfg.Engine.Color, presenter)
	defer raster.Close()

	mgrOpts := []engine.Option{engine.WithMetrics(met)}
	if cfg.Audio.Enabled {
		player := audio.NewSpeakerPlayer()
		if err := player.Initialize(); err != nil {
			logging.Logger().Warn("audio unavailable, continuing without chime", "err", err)
		} else {
			defer player.Cleanup()
			chime := audio.NewChime(player, cfg.Audio.Frequency, cfg.Audio.Duration, cfg.Audio.Volume)
			mgrOpts = append(mgrOpts, engine.WithChime(chime))
		}
	}

	mgr, err := engine.NewManager(cfg.Engine, loop, mgrOpts...)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	h := terminal.NewHost(terminal.HostConfig{
		Screen:    screen,
		Scheduler: loop,
		Manager:   mgr,
		Surface:   raster,
		Container: terminal.NewContainer(screen, cfg.Terminal.HeroFraction),
		Active:    !opts.inactive,
		Quit:      cancel,
	})

	host.Go(h.Pump, crash)
	loop.Post(h.Show)

	err = loop.Run(ctx)
	loop.Stop()
	// The loop goroutine is gone; this goroutine now owns the engine
	mgr.Teardown()
	logMetrics(reg)

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// logMetrics writes a final telemetry summary to the debug log
func logMetrics(g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		logging.Logger().Warn("gather metrics", "err", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var v float64
			switch {
			case m.GetCounter() != nil:
				v = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				v = m.GetGauge().GetValue()
			}
			attrs := []any{"name", mf.GetName(), "value", v}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			logging.Logger().Info("metric", attrs...)
		}
	}
}
