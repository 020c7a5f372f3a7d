// Package channels maps channel names to a tuning frequency and program PIDs.
package channels

import (
	"errors"
	"fmt"

	"github.com/smazurov/dvbtune/internal/tuner"
	"github.com/smazurov/dvbtune/pkg/linuxav/dvb"
)

// ErrNotFound is returned when a channel is not in the map.
var ErrNotFound = errors.New("channel not found")

// Channel is one entry of the channel map.
type Channel struct {
	Name         string `toml:"-"`
	FrequencyKHz uint32 `toml:"frequency_khz"`
	VideoPID     uint16 `toml:"video_pid"`
	PCRPID       uint16 `toml:"pcr_pid"`
	AudioPID     uint16 `toml:"audio_pid"`
	Description  string `toml:"description,omitempty"`
}

// Store persists the channel map.
type Store interface {
	Load() error
	Save() error
	Get(name string) (Channel, bool)
	Put(ch Channel) error
	Merge(list []Channel) error
	All() map[string]Channel
	Names() []string
}

// Validate checks the frequency and PID ranges.
func (c Channel) Validate() error {
	if c.Name == "" {
		return errors.New("channel name is empty")
	}
	if c.FrequencyKHz == 0 {
		return fmt.Errorf("channel %s: frequency must be greater than zero", c.Name)
	}
	for _, p := range []struct {
		name string
		pid  uint16
	}{
		{"video", c.VideoPID},
		{"PCR", c.PCRPID},
		{"audio", c.AudioPID},
	} {
		if p.pid > dvb.MaxPID {
			return fmt.Errorf("channel %s: %s PID %d out of range [0, %d]", c.Name, p.name, p.pid, dvb.MaxPID)
		}
	}
	return nil
}

// PIDs returns the channel's program PIDs in tuner form.
func (c Channel) PIDs() tuner.PIDs {
	return tuner.PIDs{Video: c.VideoPID, PCR: c.PCRPID, Audio: c.AudioPID}
}

// Request builds a tune request for the channel on the given devices.
func (c Channel) Request(frontend, demux string) tuner.Request {
	return tuner.Request{
		FrontendPath: frontend,
		FrequencyKHz: c.FrequencyKHz,
		DemuxPath:    demux,
		PIDs:         c.PIDs(),
	}
}

// Lookup returns the named channel or ErrNotFound.
func Lookup(s Store, name string) (Channel, error) {
	ch, ok := s.Get(name)
	if !ok {
		return Channel{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return ch, nil
}
