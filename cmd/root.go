// Package cmd implements the dvbtune command tree.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/smazurov/dvbtune/internal/channels"
	"github.com/smazurov/dvbtune/internal/config"
	"github.com/smazurov/dvbtune/internal/logging"
	"github.com/smazurov/dvbtune/internal/metrics"
	"github.com/smazurov/dvbtune/internal/systemd"
	"github.com/smazurov/dvbtune/internal/tuner"
	"github.com/smazurov/dvbtune/pkg/linuxav/dvb"
	"github.com/spf13/cobra"
)

// ExitFailure is the process status for any failed run (255 on Linux).
const ExitFailure = -1

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string

	// Logging settings
	LogLevel       string `toml:"logging.level" env:"LOGGING_LEVEL"`
	LogFormat      string `toml:"logging.format" env:"LOGGING_FORMAT"`
	LogTuner       string `toml:"logging.tuner" env:"LOGGING_TUNER"`
	DisableJournal bool   `toml:"logging.disable_journal" env:"LOGGING_DISABLE_JOURNAL"`

	// Metrics settings
	MetricsTextfile string `toml:"metrics.textfile" env:"METRICS_TEXTFILE"`

	// Channel map settings
	Channels string `toml:"channels.file" env:"CHANNELS_FILE"`

	// Device defaults for the channel subcommand
	Frontend string `toml:"devices.frontend" env:"FRONTEND"`
	Demux    string `toml:"devices.demux" env:"DEMUX"`

	// Handoff settings
	RestartUnit string `toml:"handoff.restart_unit" env:"RESTART_UNIT"`
	UserUnit    bool   `toml:"handoff.user_unit" env:"USER_UNIT"`
}

// unitRestarter restarts the unit that reads the decoder output.
type unitRestarter interface {
	RestartUnit(ctx context.Context, unit string) error
	UnitState(ctx context.Context, unit string) (string, error)
	Close()
}

type app struct {
	opts       Options
	newBackend func() tuner.Backend
	newUnits   func(ctx context.Context, user bool) (unitRestarter, error)
	stdout     io.Writer
}

// restartTimeout bounds the wait for the handoff unit's restart job.
const restartTimeout = 30 * time.Second

// Execute runs the command line and returns the process exit status.
func Execute() int {
	a := &app{
		newBackend: tuner.NewDeviceBackend,
		newUnits: func(ctx context.Context, user bool) (unitRestarter, error) {
			return systemd.NewManager(ctx, user)
		},
		stdout: os.Stdout,
	}
	return a.execute(os.Args[1:])
}

func (a *app) execute(args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		logging.GetLogger("main").Error("dvbtune failed", "error", err)
		return ExitFailure
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dvbtune <frontend> <frequency_khz> <demux> <pid_video> <pid_pcr> <pid_audio>",
		Short: "Tune a DVB frontend and route one program to the hardware decoder",
		Long: `Sets the frontend frequency (kHz) with DTV_CLEAR + DTV_FREQUENCY, reads back the ` +
			`frontend parameters, then installs video, PCR and audio PES filters on the demux ` +
			`with output to the decoder. PIDs may be decimal or 0x-prefixed hex.`,
		Example:       "  dvbtune /dev/dvb/adapter0/frontend0 474000 /dev/dvb/adapter0/demux0 100 101 102",
		Args:          validateTuneArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Flags and arguments are valid past this point; runtime failures
			// should not print usage.
			cmd.SilenceUsage = true
			return a.setup(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			req, err := tuner.ParseArgs(args)
			if err != nil {
				return err
			}
			return a.tune(req)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.Config, "config", "c", "dvbtune.toml", "Path to configuration file")
	flags.StringVar(&a.opts.LogLevel, "log-level", "info", "Global logging level (debug, info, warn, error)")
	flags.StringVar(&a.opts.LogFormat, "log-format", "text", "Logging format (text, json)")
	flags.StringVar(&a.opts.LogTuner, "log-tuner", "", "Tuner logging level, defaults to --log-level")
	flags.BoolVar(&a.opts.DisableJournal, "disable-journal", false, "Do not send logs to journald")
	flags.StringVar(&a.opts.MetricsTextfile, "metrics-textfile", "", "Write run metrics to this node_exporter textfile")
	flags.StringVar(&a.opts.Channels, "channels", channels.DefaultPath, "Channel map file")
	flags.StringVar(&a.opts.RestartUnit, "restart-unit", "", "systemd unit to restart after a successful tune")
	flags.BoolVar(&a.opts.UserUnit, "user-unit", false, "Look up --restart-unit on the user bus")

	root.AddCommand(
		a.channelCmd(),
		a.channelsCmd(),
		a.devicesCmd(),
		a.statusCmd(),
		a.versionCmd(),
	)
	return root
}

func validateTuneArgs(_ *cobra.Command, args []string) error {
	_, err := tuner.ParseArgs(args)
	return err
}

// setup loads configuration and initializes logging.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadConfig(&a.opts, cmd); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Initialize(logging.Config{
		Level:  a.opts.LogLevel,
		Format: a.opts.LogFormat,
		Modules: map[string]string{
			"tuner": a.opts.LogTuner,
		},
		DisableJournal: a.opts.DisableJournal,
	})
	logging.GetLogger("main").Debug("Configuration loaded", "config", a.opts.Config)
	return nil
}

// tune runs one request and writes metrics regardless of the outcome.
func (a *app) tune(req tuner.Request) error {
	logger := logging.GetLogger("main")
	recorder := metrics.NewRecorder()

	configurator := tuner.New(tuner.Options{
		Backend:  a.newBackend(),
		Logger:   logging.GetLogger("tuner"),
		Observer: recorder,
	})

	result, err := configurator.Run(req)

	if a.opts.MetricsTextfile != "" {
		if writeErr := recorder.WriteTextfile(a.opts.MetricsTextfile); writeErr != nil {
			logger.Warn("Failed to write metrics textfile", "path", a.opts.MetricsTextfile, "error", writeErr)
		}
	}

	if err != nil {
		return err
	}

	logger.Info("Tuning complete",
		"frontend", req.FrontendPath,
		"frequency_khz", req.FrequencyKHz,
		"demux", req.DemuxPath,
		"filters", len(result.Filters))

	if a.opts.RestartUnit != "" {
		return a.restartUnit(a.opts.RestartUnit)
	}
	return nil
}

// restartUnit hands the tuned program over to its consumer.
func (a *app) restartUnit(unit string) error {
	logger := logging.GetLogger("main")
	ctx, cancel := context.WithTimeout(context.Background(), restartTimeout)
	defer cancel()

	units, err := a.newUnits(ctx, a.opts.UserUnit)
	if err != nil {
		return err
	}
	defer units.Close()

	if err := units.RestartUnit(ctx, unit); err != nil {
		return err
	}

	state, err := units.UnitState(ctx, unit)
	if err != nil {
		logger.Warn("Failed to read unit state", "unit", unit, "error", err)
		state = "unknown"
	}
	logger.Info("Unit restarted", "unit", unit, "state", state)
	return nil
}

// defaultFrontend and defaultDemux point at the first adapter.
var (
	defaultFrontend = dvb.FrontendPath(dvb.DefaultRoot, 0, 0)
	defaultDemux    = dvb.DemuxPath(dvb.DefaultRoot, 0, 0)
)
