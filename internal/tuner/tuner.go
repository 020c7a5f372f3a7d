// Package tuner configures a DVB frontend and demux for one program.
//
// A run is strictly sequential: the frontend is opened, tuned and closed,
// then the demux is opened, given the video, PCR and audio PES filters and
// closed. Any failure aborts the rest of its phase and the run, and nothing
// is retried or rolled back.
package tuner

import (
	"fmt"
	"log/slog"

	"github.com/smazurov/dvbtune/internal/logging"
	"github.com/smazurov/dvbtune/pkg/linuxav/dvb"
)

// Observer is notified of run progress. Implementations must not block.
type Observer interface {
	FrontendTuned(frequencyKHz uint32, params dvb.FrontendParameters)
	FilterApplied(params dvb.PESFilterParams)
	RunFinished(err error)
}

// Options configures a new Configurator.
type Options struct {
	// Backend opens the devices (required).
	Backend Backend

	// Logger for progress messages. If nil, uses slog.Default().
	Logger logging.Logger

	// Observer receives progress callbacks (optional).
	Observer Observer
}

// Configurator runs tune requests against a Backend.
type Configurator struct {
	backend  Backend
	logger   logging.Logger
	observer Observer
}

// Result is what a successful run applied.
type Result struct {
	Parameters dvb.FrontendParameters
	Filters    []dvb.PESFilterParams
}

// New creates a Configurator.
func New(opts Options) *Configurator {
	c := &Configurator{
		backend:  opts.Backend,
		logger:   opts.Logger,
		observer: opts.Observer,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	return c
}

// TuningProperties returns the property batch for a tune: DTV_CLEAR first so
// the driver discards state from the previous session, then DTV_FREQUENCY.
func TuningProperties(frequencyKHz uint32) []dvb.Property {
	return []dvb.Property{
		{Cmd: dvb.DTVClear},
		{Cmd: dvb.DTVFrequency, Data: frequencyKHz},
	}
}

// Run configures the frontend and, if that succeeded, the demux.
func (c *Configurator) Run(req Request) (Result, error) {
	result, err := c.run(req)
	c.observer.RunFinished(err)
	return result, err
}

func (c *Configurator) run(req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	params, err := c.ConfigureFrontend(req.FrontendPath, req.FrequencyKHz)
	if err != nil {
		return Result{}, err
	}

	filters, err := c.ConfigureDemux(req.DemuxPath, req.PIDs)
	if err != nil {
		return Result{}, err
	}

	return Result{Parameters: params, Filters: filters}, nil
}

// ConfigureFrontend tunes the frontend at path and reads back its parameters.
// The parameters are reported as-is; lock is not checked.
func (c *Configurator) ConfigureFrontend(path string, frequencyKHz uint32) (dvb.FrontendParameters, error) {
	fe, err := c.backend.OpenFrontend(path)
	if err != nil {
		return dvb.FrontendParameters{}, newError(ErrCodeOpenFailed, PhaseFrontend,
			"failed to open frontend device", path, err)
	}
	defer c.closeDevice(fe, "frontend", path)

	if err := fe.SetProperties(TuningProperties(frequencyKHz)); err != nil {
		return dvb.FrontendParameters{}, newError(ErrCodeIoctlFailed, PhaseFrontend,
			"FE_SET_PROPERTY failed", path, err)
	}
	c.logger.Debug("Frequency set", "path", path, "frequency_khz", frequencyKHz)

	params, err := fe.GetFrontend()
	if err != nil {
		return dvb.FrontendParameters{}, newError(ErrCodeIoctlFailed, PhaseFrontend,
			"FE_GET_FRONTEND failed", path, err)
	}

	c.logger.Info("Frontend tuned",
		"path", path,
		"frequency_khz", frequencyKHz,
		"reported_frequency", params.Frequency,
		"inversion", params.Inversion.String())
	c.observer.FrontendTuned(frequencyKHz, params)
	return params, nil
}

// ConfigureDemux installs the video, PCR and audio PES filters, in that
// order, on the demux at path. It stops at the first rejected filter.
func (c *Configurator) ConfigureDemux(path string, pids PIDs) ([]dvb.PESFilterParams, error) {
	dmx, err := c.backend.OpenDemux(path)
	if err != nil {
		return nil, newError(ErrCodeOpenFailed, PhaseDemux, "failed to open demux device", path, err)
	}
	defer c.closeDevice(dmx, "demux", path)

	filter := dvb.PESFilterParams{
		Input:  dvb.DmxInFrontend,
		Output: dvb.DmxOutDecoder,
	}

	applied := make([]dvb.PESFilterParams, 0, 3)
	for _, s := range pids.streams() {
		filter.PID = s.pid
		filter.Type = s.typ

		if err := dmx.SetPESFilter(filter); err != nil {
			return applied, newError(ErrCodeIoctlFailed, PhaseDemux,
				fmt.Sprintf("DMX_SET_PES_FILTER failed for %s PID %d", s.typ, s.pid), path, err)
		}

		c.logger.Info("PES filter set", "path", path, "stream", s.typ.String(), "pid", s.pid)
		applied = append(applied, filter)
		c.observer.FilterApplied(filter)
	}

	return applied, nil
}

type closer interface {
	Close() error
}

func (c *Configurator) closeDevice(dev closer, kind, path string) {
	if err := dev.Close(); err != nil {
		c.logger.Warn("Failed to close device", "device", kind, "path", path, "error", err)
	}
}

type nopObserver struct{}

func (nopObserver) FrontendTuned(uint32, dvb.FrontendParameters) {}
func (nopObserver) FilterApplied(dvb.PESFilterParams) {}
func (nopObserver) RunFinished(error) {}
