// Package dvb provides pure Go bindings to the Linux DVB API (DVBv5 frontend
// properties and the demux PES filter interface).
//
// This package does not use cgo, enabling simple cross-compilation for
// different Linux architectures (amd64, arm64, arm, 386).
//
// # Tuning
//
// Clear the previous tuning state and set a frequency in one batch:
//
//	fe, err := dvb.OpenFrontend("/dev/dvb/adapter0/frontend0")
//	if err != nil {
//	    return err
//	}
//	defer fe.Close()
//
//	err = fe.SetProperties([]dvb.Property{
//	    {Cmd: dvb.DTVClear},
//	    {Cmd: dvb.DTVFrequency, Data: 474000},
//	})
//
// # PES Filters
//
// Route an elementary stream to the hardware decoder:
//
//	dmx, _ := dvb.OpenDemux("/dev/dvb/adapter0/demux0")
//	defer dmx.Close()
//	err = dmx.SetPESFilter(dvb.PESFilterParams{
//	    PID:    100,
//	    Input:  dvb.DmxInFrontend,
//	    Output: dvb.DmxOutDecoder,
//	    Type:   dvb.PESVideo,
//	})
//
// # Adapter Enumeration
//
// List the frontend and demux nodes of every adapter:
//
//	adapters, err := dvb.FindAdapters(dvb.DefaultRoot)
package dvb
