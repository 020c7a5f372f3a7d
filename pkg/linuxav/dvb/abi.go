//go:build linux

package dvb

import "encoding/binary"

// dtvProperty mirrors the packed struct dtv_property. Every member is
// 4-byte sized so the Go layout has no padding.
type dtvProperty struct {
	cmd      uint32                     // offset 0
	reserved [3]uint32                  // offset 4
	u        [dtvPropertyUnionSize]byte // offset 16
	result   int32
}

func (p *dtvProperty) setData(v uint32) {
	binary.NativeEndian.PutUint32(p.u[:4], v)
}

func (p *dtvProperty) data() uint32 {
	return binary.NativeEndian.Uint32(p.u[:4])
}

// dtvProperties mirrors struct dtv_properties.
type dtvProperties struct {
	num   uint32
	props *dtvProperty
}

// dvbFrontendParameters mirrors struct dvb_frontend_parameters.
// The delivery system union is kept opaque.
type dvbFrontendParameters struct {
	frequency uint32   // offset 0
	inversion uint32   // offset 4
	u         [28]byte // offset 8
}

// dmxPESFilterParams mirrors struct dmx_pes_filter_params.
type dmxPESFilterParams struct {
	pid     uint16  // offset 0
	_       [2]byte // padding
	input   uint32  // offset 4
	output  uint32  // offset 8
	pesType uint32  // offset 12
	flags   uint32  // offset 16
}

func encodeProperties(props []Property) []dtvProperty {
	raw := make([]dtvProperty, len(props))
	for i, p := range props {
		raw[i].cmd = uint32(p.Cmd)
		raw[i].setData(p.Data)
	}
	return raw
}

func encodePESFilter(p PESFilterParams) dmxPESFilterParams {
	return dmxPESFilterParams{
		pid:     p.PID,
		input:   uint32(p.Input),
		output:  uint32(p.Output),
		pesType: uint32(p.Type),
		flags:   uint32(p.Flags),
	}
}
