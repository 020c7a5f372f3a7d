package dvb

import (
	"fmt"
	"strings"
)

// MaxPID is the largest valid 13-bit transport stream packet identifier.
const MaxPID = 0x1FFF

// PropertyCmd is a DVBv5 property command (DTV_*).
type PropertyCmd uint32

// Property commands.
const (
	DTVUndefined      PropertyCmd = 0
	DTVTune           PropertyCmd = 1
	DTVClear          PropertyCmd = 2
	DTVFrequency      PropertyCmd = 3
	DTVModulation     PropertyCmd = 4
	DTVBandwidthHz    PropertyCmd = 5
	DTVInversion      PropertyCmd = 6
	DTVSymbolRate     PropertyCmd = 8
	DTVInnerFEC       PropertyCmd = 9
	DTVDeliverySystem PropertyCmd = 17
	DTVAPIVersion     PropertyCmd = 35
	DTVStreamID       PropertyCmd = 42
	DTVEnumDelsys     PropertyCmd = 44
)

var propertyNames = map[PropertyCmd]string{
	DTVUndefined:      "DTV_UNDEFINED",
	DTVTune:           "DTV_TUNE",
	DTVClear:          "DTV_CLEAR",
	DTVFrequency:      "DTV_FREQUENCY",
	DTVModulation:     "DTV_MODULATION",
	DTVBandwidthHz:    "DTV_BANDWIDTH_HZ",
	DTVInversion:      "DTV_INVERSION",
	DTVSymbolRate:     "DTV_SYMBOL_RATE",
	DTVInnerFEC:       "DTV_INNER_FEC",
	DTVDeliverySystem: "DTV_DELIVERY_SYSTEM",
	DTVAPIVersion:     "DTV_API_VERSION",
	DTVStreamID:       "DTV_STREAM_ID",
	DTVEnumDelsys:     "DTV_ENUM_DELSYS",
}

func (c PropertyCmd) String() string {
	if name, ok := propertyNames[c]; ok {
		return name
	}
	return fmt.Sprintf("DTV_%d", uint32(c))
}

// Property is a single (command, value) pair of a property batch.
// Only the 32-bit data member of the kernel union is exposed.
type Property struct {
	Cmd  PropertyCmd
	Data uint32
}

// Inversion is the spectral inversion setting reported by the frontend.
type Inversion uint32

// Inversion values.
const (
	InversionOff  Inversion = 0
	InversionOn   Inversion = 1
	InversionAuto Inversion = 2
)

func (i Inversion) String() string {
	switch i {
	case InversionOff:
		return "off"
	case InversionOn:
		return "on"
	case InversionAuto:
		return "auto"
	default:
		return fmt.Sprintf("inversion(%d)", uint32(i))
	}
}

// FrontendParameters is the legacy FE_GET_FRONTEND result.
type FrontendParameters struct {
	Frequency uint32
	Inversion Inversion
}

// Status is the fe_status_t bit set returned by FE_READ_STATUS.
type Status uint32

// Status bits.
const (
	HasSignal  Status = 0x01
	HasCarrier Status = 0x02
	HasViterbi Status = 0x04
	HasSync    Status = 0x08
	HasLock    Status = 0x10
	TimedOut   Status = 0x20
	Reinit     Status = 0x40
)

var statusNames = []struct {
	bit  Status
	name string
}{
	{HasSignal, "SIGNAL"},
	{HasCarrier, "CARRIER"},
	{HasViterbi, "VITERBI"},
	{HasSync, "SYNC"},
	{HasLock, "LOCK"},
	{TimedOut, "TIMEDOUT"},
	{Reinit, "REINIT"},
}

// Locked reports whether the frontend has a full lock.
func (s Status) Locked() bool {
	return s&HasLock != 0
}

func (s Status) String() string {
	if s == 0 {
		return "NONE"
	}
	var parts []string
	for _, sn := range statusNames {
		if s&sn.bit != 0 {
			parts = append(parts, sn.name)
		}
	}
	if rest := s &^ (HasSignal | HasCarrier | HasViterbi | HasSync | HasLock | TimedOut | Reinit); rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// DmxInput selects where the demux reads the transport stream from.
type DmxInput uint32

// Demux inputs.
const (
	DmxInFrontend DmxInput = 0
	DmxInDVR      DmxInput = 1
)

func (in DmxInput) String() string {
	switch in {
	case DmxInFrontend:
		return "frontend"
	case DmxInDVR:
		return "dvr"
	default:
		return fmt.Sprintf("input(%d)", uint32(in))
	}
}

// DmxOutput selects where filtered packets are delivered.
type DmxOutput uint32

// Demux outputs.
const (
	DmxOutDecoder    DmxOutput = 0
	DmxOutTap        DmxOutput = 1
	DmxOutTSTap      DmxOutput = 2
	DmxOutTSDemuxTap DmxOutput = 3
)

func (out DmxOutput) String() string {
	switch out {
	case DmxOutDecoder:
		return "decoder"
	case DmxOutTap:
		return "tap"
	case DmxOutTSTap:
		return "ts_tap"
	case DmxOutTSDemuxTap:
		return "tsdemux_tap"
	default:
		return fmt.Sprintf("output(%d)", uint32(out))
	}
}

// PESType is the elementary stream type declared for a PES filter.
type PESType uint32

// PES types of the first decoder.
const (
	PESAudio    PESType = 0
	PESVideo    PESType = 1
	PESTeletext PESType = 2
	PESSubtitle PESType = 3
	PESPCR      PESType = 4
	PESOther    PESType = 20
)

func (t PESType) String() string {
	switch t {
	case PESAudio:
		return "audio"
	case PESVideo:
		return "video"
	case PESTeletext:
		return "teletext"
	case PESSubtitle:
		return "subtitle"
	case PESPCR:
		return "pcr"
	case PESOther:
		return "other"
	default:
		return fmt.Sprintf("pes(%d)", uint32(t))
	}
}

// FilterFlags modify filter behaviour (DMX_CHECK_CRC etc).
type FilterFlags uint32

// Filter flags.
const (
	FlagCheckCRC       FilterFlags = 0x01
	FlagOneShot        FilterFlags = 0x02
	FlagImmediateStart FilterFlags = 0x04
)

// PESFilterParams mirrors struct dmx_pes_filter_params.
type PESFilterParams struct {
	PID    uint16
	Input  DmxInput
	Output DmxOutput
	Type   PESType
	Flags  FilterFlags
}

func (p PESFilterParams) String() string {
	return fmt.Sprintf("pid=%d type=%s input=%s output=%s flags=%#x",
		p.PID, p.Type, p.Input, p.Output, uint32(p.Flags))
}

// AdapterInfo describes the device nodes of one DVB adapter.
type AdapterInfo struct {
	Number    int
	Path      string
	Frontends []string
	Demuxes   []string
	DVRs      []string
}
