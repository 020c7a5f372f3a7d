package tuner

import (
	"fmt"
	"io/fs"
	"strings"
	"syscall"

	"github.com/smazurov/dvbtune/pkg/linuxav/dvb"
)

// fakeBackend records every device call in order.
type fakeBackend struct {
	calls []string

	props   [][]dvb.Property
	filters []dvb.PESFilterParams

	// failures maps a call name to the 1-based attempt that fails.
	failures map[string]int
	attempts map[string]int

	params dvb.FrontendParameters
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		failures: make(map[string]int),
		attempts: make(map[string]int),
	}
}

func (b *fakeBackend) failOn(call string, attempt int) *fakeBackend {
	b.failures[call] = attempt
	return b
}

func (b *fakeBackend) record(call string) error {
	b.calls = append(b.calls, call)
	name := strings.Fields(call)[0]
	b.attempts[name]++
	if n, ok := b.failures[name]; ok && b.attempts[name] == n {
		switch name {
		case "open_frontend", "open_demux":
			return &fs.PathError{Op: "open", Path: strings.Fields(call)[1], Err: syscall.ENOENT}
		default:
			return syscall.EINVAL
		}
	}
	return nil
}

func (b *fakeBackend) count(name string) int {
	n := 0
	for _, c := range b.calls {
		if strings.Fields(c)[0] == name {
			n++
		}
	}
	return n
}

func (b *fakeBackend) OpenFrontend(path string) (Frontend, error) {
	if err := b.record("open_frontend " + path); err != nil {
		return nil, err
	}
	return &fakeFrontend{b: b}, nil
}

func (b *fakeBackend) OpenDemux(path string) (Demux, error) {
	if err := b.record("open_demux " + path); err != nil {
		return nil, err
	}
	return &fakeDemux{b: b}, nil
}

type fakeFrontend struct {
	b *fakeBackend
}

func (f *fakeFrontend) SetProperties(props []dvb.Property) error {
	parts := make([]string, len(props))
	for i, p := range props {
		parts[i] = fmt.Sprintf("%s=%d", p.Cmd, p.Data)
	}
	cp := make([]dvb.Property, len(props))
	copy(cp, props)
	f.b.props = append(f.b.props, cp)
	return f.b.record("set_property " + strings.Join(parts, ","))
}

func (f *fakeFrontend) GetFrontend() (dvb.FrontendParameters, error) {
	if err := f.b.record("get_frontend"); err != nil {
		return dvb.FrontendParameters{}, err
	}
	return f.b.params, nil
}

func (f *fakeFrontend) Close() error {
	return f.b.record("close_frontend")
}

type fakeDemux struct {
	b *fakeBackend
}

func (d *fakeDemux) SetPESFilter(p dvb.PESFilterParams) error {
	d.b.filters = append(d.b.filters, p)
	return d.b.record(fmt.Sprintf("set_pes_filter %d %s", p.PID, p.Type))
}

func (d *fakeDemux) Close() error {
	return d.b.record("close_demux")
}

// recordingObserver captures observer callbacks.
type recordingObserver struct {
	tuned    []uint32
	filters  []dvb.PESFilterParams
	finished []error
}

func (o *recordingObserver) FrontendTuned(freq uint32, _ dvb.FrontendParameters) {
	o.tuned = append(o.tuned, freq)
}

func (o *recordingObserver) FilterApplied(p dvb.PESFilterParams) {
	o.filters = append(o.filters, p)
}

func (o *recordingObserver) RunFinished(err error) {
	o.finished = append(o.finished, err)
}
