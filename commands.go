package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"wavefield/app"
	"wavefield/hal"
	"wavefield/internal/buildinfo"
	"wavefield/internal/config"
	"wavefield/internal/logging"
	"wavefield/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

type runFlags struct {
	config     string
	headless   bool
	term       bool
	static     bool
	consoleLog bool
}

// flagKeys maps flags onto config keys. Bound flags only override the file
// and environment when set explicitly.
var flagKeys = map[string]string{
	"reduced-motion": "motion.reduced",
	"lines":          "lines.count",
	"speed":          "lines.speed",
	"palette":        "lines.palette",
	"agent":          "device.agent",
	"metrics-addr":   "metrics.addr",
	"log-level":      "log.level",
	"no-graphics":    "headless.no_graphics",
	"ticks":          "headless.ticks",
	"hz":             "headless.hz",
	"snapshot":       "headless.snapshot",
}

func newRootCmd() *cobra.Command {
	var rf runFlags

	root := &cobra.Command{
		Use:   "wavefield",
		Short: "Animated wave-line background",
		Long: `wavefield renders layered sine-wave lines that drift over time and bend
toward the pointer. Without graphics support, or with reduced motion
requested, a static gradient is shown instead.

Examples:
  wavefield                          # desktop window
  wavefield --term                   # half-block rendering in the terminal
  wavefield --headless --ticks 120 --snapshot frame.png
  WAVEFIELD_MOTION_REDUCED=true wavefield`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, rf)
		},
	}

	f := root.Flags()
	f.StringVar(&rf.config, "config", "", "config file (default ./wavefield.yaml or ~/.config/wavefield/wavefield.yaml)")
	f.BoolVar(&rf.headless, "headless", false, "render into a software framebuffer without a window")
	f.BoolVar(&rf.term, "term", false, "render into the terminal")
	f.BoolVar(&rf.static, "static-interaction", false, "ignore pointer and touch input")
	f.BoolVar(&rf.consoleLog, "console-log", false, "force human-readable logs")
	f.Bool("reduced-motion", false, "show the static background instead of animating")
	f.Int("lines", 0, "number of lines (0 = device default)")
	f.Float64("speed", 1, "animation speed multiplier")
	f.StringSlice("palette", nil, "line colors as #rrggbb, cycled by line index")
	f.String("agent", "", "platform string used for device classification")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address")
	f.String("log-level", "info", "debug, info, warn or error")
	f.Bool("no-graphics", false, "headless: report no graphics support")
	f.Uint64("ticks", 0, "stop after N ticks in headless or terminal mode (0 = run until interrupted)")
	f.Int("hz", 60, "tick rate in headless mode, and in terminal mode when set (terminal default 30)")
	f.String("snapshot", "", "headless: write the last frame to this PNG file")
	root.MarkFlagsMutuallyExclusive("headless", "term")

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// loadConfig layers flags over the file and environment. --hz sets both the
// headless and the terminal tick rate.
func loadConfig(cmd *cobra.Command, rf runFlags) (*viper.Viper, *config.Config, error) {
	v := config.New(rf.config)
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, nil, err
	}
	if rf.static {
		v.Set("lines.interactive", false)
	}
	if cmd.Flags().Changed("hz") {
		hz, err := cmd.Flags().GetInt("hz")
		if err != nil {
			return nil, nil, err
		}
		v.Set("terminal.hz", hz)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}
	return v, cfg, nil
}

func run(cmd *cobra.Command, rf runFlags) error {
	v, cfg, err := loadConfig(cmd, rf)
	if err != nil {
		return err
	}

	logCfg := logging.Config{Level: cfg.Log.Level, Out: cmd.ErrOrStderr()}
	if rf.consoleLog {
		logCfg.Console = &rf.consoleLog
	}
	if rf.term && logCfg.Out == os.Stderr {
		// The terminal host owns the screen.
		logCfg.Out = io.Discard
	}
	log := logging.New(logCfg)
	log.Info().Str("version", buildinfo.Short()).Str("config", v.ConfigFileUsed()).Msg("starting")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	motion := make(chan bool, 1)
	if config.Watch(v, func(next *config.Config, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("config reload")
			return
		}
		pushLatest(motion, next.Motion.Reduced)
	}) {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("watching config")
	}

	newApp := app.New(cfg, log, m, motion)

	g, gctx := errgroup.WithContext(ctx)
	hostCtx, cancelHost := context.WithCancel(gctx)
	if cfg.Metrics.Addr != "" {
		g.Go(func() error {
			log.Info().Str("addr", cfg.Metrics.Addr).Msg("serving metrics")
			if err := metrics.Serve(hostCtx, cfg.Metrics.Addr, reg); err != nil {
				return fmt.Errorf("metrics: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer cancelHost()
		return runHost(hostCtx, rf, cfg, newApp, log)
	})
	return g.Wait()
}

func runHost(ctx context.Context, rf runFlags, cfg *config.Config, newApp hal.NewApp, log zerolog.Logger) error {
	switch {
	case rf.headless:
		return hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Width:      cfg.Headless.Width,
			Height:     cfg.Headless.Height,
			Hz:         cfg.Headless.Hz,
			Ticks:      cfg.Headless.Ticks,
			Snapshot:   cfg.Headless.Snapshot,
			NoGraphics: cfg.Headless.NoGraphics,
			Agent:      cfg.Device.Agent,
		})
	case rf.term:
		return hal.RunTerminal(ctx, newApp, terminalConfig(cfg, log))
	default:
		return hal.RunWindow(ctx, newApp, hal.WindowConfig{
			Title:     cfg.Window.Title,
			Width:     cfg.Window.Width,
			Height:    cfg.Window.Height,
			Libraries: cfg.Window.Libraries,
			Agent:     cfg.Device.Agent,
		}, log)
	}
}

func terminalConfig(cfg *config.Config, log zerolog.Logger) hal.TerminalConfig {
	return hal.TerminalConfig{
		Hz:         cfg.Terminal.Hz,
		Ticks:      cfg.Headless.Ticks,
		NoGraphics: cfg.Headless.NoGraphics,
		Agent:      cfg.Device.Agent,
		Log:        log,
	}
}

// pushLatest replaces any pending value in a one-slot channel.
func pushLatest(ch chan bool, v bool) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
