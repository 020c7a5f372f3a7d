package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/smazurov/dvbtune/internal/tuner"
	"github.com/smazurov/dvbtune/pkg/linuxav/dvb"
)

func newTestRecorder() *Recorder {
	r := NewRecorder()
	r.now = func() time.Time { return time.Unix(1700000000, 0) }
	return r
}

func TestRecorderSuccess(t *testing.T) {
	r := newTestRecorder()

	r.FrontendTuned(474000, dvb.FrontendParameters{Frequency: 474000000})
	for _, f := range []dvb.PESFilterParams{
		{PID: 100, Type: dvb.PESVideo},
		{PID: 101, Type: dvb.PESPCR},
		{PID: 102, Type: dvb.PESAudio},
	} {
		r.FilterApplied(f)
	}
	r.RunFinished(nil)

	if got := testutil.ToFloat64(r.runSuccess); got != 1 {
		t.Errorf("run_success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.frequency); got != 474000 {
		t.Errorf("frequency_khz = %v, want 474000", got)
	}
	if got := testutil.ToFloat64(r.lastRun); got != 1700000000 {
		t.Errorf("last_run_timestamp_seconds = %v", got)
	}

	want := map[string]float64{"video": 100, "pcr": 101, "audio": 102}
	for stream, pid := range want {
		if got := testutil.ToFloat64(r.filterPID.WithLabelValues(stream)); got != pid {
			t.Errorf("filter_pid{stream=%q} = %v, want %v", stream, got, pid)
		}
	}
	for _, phase := range phases {
		if got := testutil.ToFloat64(r.failures.WithLabelValues(phase)); got != 0 {
			t.Errorf("run_failures{phase=%q} = %v, want 0", phase, got)
		}
	}
}

func TestRecorderFailurePhase(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		phase string
	}{
		{"frontend", &tuner.Error{Code: tuner.ErrCodeOpenFailed, Phase: tuner.PhaseFrontend}, tuner.PhaseFrontend},
		{"demux wrapped", fmt.Errorf("run: %w", &tuner.Error{Code: tuner.ErrCodeIoctlFailed, Phase: tuner.PhaseDemux}), tuner.PhaseDemux},
		{"plain error", fmt.Errorf("boom"), tuner.PhaseArgs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRecorder()
			r.RunFinished(tt.err)

			if got := testutil.ToFloat64(r.runSuccess); got != 0 {
				t.Errorf("run_success = %v, want 0", got)
			}
			for _, phase := range phases {
				want := 0.0
				if phase == tt.phase {
					want = 1
				}
				if got := testutil.ToFloat64(r.failures.WithLabelValues(phase)); got != want {
					t.Errorf("run_failures{phase=%q} = %v, want %v", phase, got, want)
				}
			}
		})
	}
}

func TestWriteTextfile(t *testing.T) {
	r := newTestRecorder()
	r.FrontendTuned(187250, dvb.FrontendParameters{})
	r.RunFinished(nil)

	path := filepath.Join(t.TempDir(), "dvbtune.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		"dvbtune_run_success 1",
		"dvbtune_frontend_frequency_khz 187250",
		`dvbtune_run_failures{phase="demux"} 0`,
	} {
		if !strings.Contains(string(data), line) {
			t.Errorf("textfile missing %q:\n%s", line, data)
		}
	}
}

func TestRegistryCollects(t *testing.T) {
	r := newTestRecorder()
	r.FilterApplied(dvb.PESFilterParams{PID: 49, Type: dvb.PESVideo})

	count, err := testutil.GatherAndCount(r.Registry(), "dvbtune_filter_pid")
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("dvbtune_filter_pid series = %d, want 1", count)
	}
}
