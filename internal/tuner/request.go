package tuner

import (
	"fmt"
	"strconv"

	"github.com/smazurov/dvbtune/pkg/linuxav/dvb"
)

// ArgCount is the number of positional arguments of a tune invocation.
const ArgCount = 6

// PIDs holds the packet identifiers of one program.
type PIDs struct {
	Video uint16
	PCR   uint16
	Audio uint16
}

type stream struct {
	pid uint16
	typ dvb.PESType
}

// streams pairs each PID with its PES type in filter order.
func (p PIDs) streams() [3]stream {
	return [3]stream{
		{pid: p.Video, typ: dvb.PESVideo},
		{pid: p.PCR, typ: dvb.PESPCR},
		{pid: p.Audio, typ: dvb.PESAudio},
	}
}

// Request describes one tune: where the devices are and what to select.
type Request struct {
	FrontendPath string
	FrequencyKHz uint32
	DemuxPath    string
	PIDs         PIDs
}

// ParseArgs builds a Request from
// <frontend> <frequency_kHz> <demux> <pid_video> <pid_pcr> <pid_audio>.
func ParseArgs(args []string) (Request, error) {
	if len(args) != ArgCount {
		return Request{}, newError(ErrCodeInvalidArgs, PhaseArgs,
			fmt.Sprintf("expected %d arguments, got %d", ArgCount, len(args)), "", nil)
	}

	freq, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return Request{}, newError(ErrCodeInvalidArgs, PhaseArgs,
			fmt.Sprintf("invalid frequency %q", args[1]), "", err)
	}

	var pids [3]uint16
	names := [3]string{"video", "PCR", "audio"}
	for i := range pids {
		pid, err := ParsePID(args[3+i])
		if err != nil {
			return Request{}, newError(ErrCodeInvalidArgs, PhaseArgs,
				fmt.Sprintf("invalid %s PID %q", names[i], args[3+i]), "", err)
		}
		pids[i] = pid
	}

	req := Request{
		FrontendPath: args[0],
		FrequencyKHz: uint32(freq),
		DemuxPath:    args[2],
		PIDs:         PIDs{Video: pids[0], PCR: pids[1], Audio: pids[2]},
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// ParsePID parses a decimal or 0x-prefixed PID and checks its range.
// Leading zeros are decimal: "0100" is 100.
func ParsePID(s string) (uint16, error) {
	digits, base := s, 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		digits, base = s[2:], 16
	}

	v, err := strconv.ParseUint(digits, base, 16)
	if err != nil {
		return 0, err
	}
	if v > dvb.MaxPID {
		return 0, fmt.Errorf("PID %d out of range [0, %d]", v, dvb.MaxPID)
	}
	return uint16(v), nil
}

// Validate checks a Request built outside ParseArgs, e.g. from a channel map.
func (r Request) Validate() error {
	switch {
	case r.FrontendPath == "":
		return newError(ErrCodeInvalidArgs, PhaseArgs, "frontend device path is empty", "", nil)
	case r.DemuxPath == "":
		return newError(ErrCodeInvalidArgs, PhaseArgs, "demux device path is empty", "", nil)
	case r.FrequencyKHz == 0:
		return newError(ErrCodeInvalidArgs, PhaseArgs, "frequency must be greater than zero", "", nil)
	}

	for _, s := range r.PIDs.streams() {
		if s.pid > dvb.MaxPID {
			return newError(ErrCodeInvalidArgs, PhaseArgs,
				fmt.Sprintf("%s PID %d out of range [0, %d]", s.typ, s.pid, dvb.MaxPID), "", nil)
		}
	}
	return nil
}
