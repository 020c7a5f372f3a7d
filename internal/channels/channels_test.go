package channels

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/smazurov/dvbtune/internal/tuner"
)

const sampleMap = `version = 1

[channels.kvie]
frequency_khz = 187250
video_pid = 49
pcr_pid = 48
audio_pid = 52
description = "KVIE HD 6-1"

[channels.kcra]
frequency_khz = 473000
video_pid = 0x31
pcr_pid = 0x31
audio_pid = 0x34
`

// setupTestStore creates a store backed by a temporary file.
func setupTestStore(t *testing.T, content string) (*tomlStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "channels.toml")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write channel map: %v", err)
		}
	}
	return NewTOML(path).(*tomlStore), path
}

func TestNewTOML(t *testing.T) {
	store := NewTOML("").(*tomlStore)
	if store.configPath != DefaultPath {
		t.Errorf("expected default path %q, got %s", DefaultPath, store.configPath)
	}
	if store.config.Version != 1 {
		t.Errorf("expected version 1, got %d", store.config.Version)
	}
	if store.config.Channels == nil {
		t.Error("channels map should be initialized")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	store, _ := setupTestStore(t, "")

	if err := store.Load(); err != nil {
		t.Errorf("Load should not error on non-existent file, got: %v", err)
	}
	if len(store.All()) != 0 {
		t.Errorf("expected empty map, got %d channels", len(store.All()))
	}
}

func TestLoadAndLookup(t *testing.T) {
	store, _ := setupTestStore(t, sampleMap)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	ch, ok := store.Get("kvie")
	if !ok {
		t.Fatal("kvie not found")
	}
	want := Channel{
		Name:         "kvie",
		FrequencyKHz: 187250,
		VideoPID:     49,
		PCRPID:       48,
		AudioPID:     52,
		Description:  "KVIE HD 6-1",
	}
	if ch != want {
		t.Errorf("got %+v, want %+v", ch, want)
	}

	if got := store.Names(); !reflect.DeepEqual(got, []string{"kcra", "kvie"}) {
		t.Errorf("Names() = %v", got)
	}

	if _, err := Lookup(store, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(missing) error = %v, want ErrNotFound", err)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":      "[channels.bad\n",
		"pid range":   "[channels.bad]\nfrequency_khz = 1\nvideo_pid = 8192\n",
		"pid too big": "[channels.bad]\nfrequency_khz = 1\nvideo_pid = 70000\n",
		"zero freq":   "[channels.bad]\nvideo_pid = 1\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			store, _ := setupTestStore(t, content)
			if err := store.Load(); err == nil {
				t.Error("expected Load to fail")
			}
		})
	}
}

func TestPutSaveAndReload(t *testing.T) {
	store, path := setupTestStore(t, "")

	ch := Channel{Name: "kxtv", FrequencyKHz: 563000, VideoPID: 0x31, PCRPID: 0x31, AudioPID: 0x34}
	if err := store.Put(ch); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	reloaded := NewTOML(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got, ok := reloaded.Get("kxtv"); !ok || got != ch {
		t.Errorf("reloaded channel = %+v (found %v), want %+v", got, ok, ch)
	}

	if err := store.Put(Channel{Name: "bad", FrequencyKHz: 1, AudioPID: 9000}); err == nil {
		t.Error("Put should reject an out-of-range PID")
	}
}

func TestChannelRequest(t *testing.T) {
	ch := Channel{Name: "kvie", FrequencyKHz: 187250, VideoPID: 49, PCRPID: 48, AudioPID: 52}
	req := ch.Request("/dev/dvb/adapter0/frontend0", "/dev/dvb/adapter0/demux0")

	want := tuner.Request{
		FrontendPath: "/dev/dvb/adapter0/frontend0",
		FrequencyKHz: 187250,
		DemuxPath:    "/dev/dvb/adapter0/demux0",
		PIDs:         tuner.PIDs{Video: 49, PCR: 48, Audio: 52},
	}
	if req != want {
		t.Errorf("Request() = %+v, want %+v", req, want)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

const sampleCSV = `Channel,Name,Sequence #,BroadcastFreq(kHz),Bandwidth(mHz),PID_A,PID_B,PID_C
6.1,KVIE-HD,1,187250,6,49,48,52
10.1,KXTV,2,563000,6,0x31,0x31,0x34
`

func TestReadCSV(t *testing.T) {
	list, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d channels, want 2", len(list))
	}

	want := Channel{Name: "6-1", FrequencyKHz: 187250, VideoPID: 49, PCRPID: 48, AudioPID: 52, Description: "KVIE-HD"}
	if list[0] != want {
		t.Errorf("first channel = %+v, want %+v", list[0], want)
	}
	if list[1].Name != "10-1" || list[1].VideoPID != 0x31 || list[1].AudioPID != 0x34 {
		t.Errorf("second channel = %+v", list[1])
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"empty", ""},
		{"missing column", "Channel,Name,BroadcastFreq(kHz),PID_A,PID_B\n6.1,X,1,2,3\n"},
		{"bad frequency", "Channel,Name,BroadcastFreq(kHz),PID_A,PID_B,PID_C\n6.1,X,abc,1,2,3\n"},
		{"bad pid", "Channel,Name,BroadcastFreq(kHz),PID_A,PID_B,PID_C\n6.1,X,1000,1,2,8192\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.csv)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestImport(t *testing.T) {
	store, path := setupTestStore(t, sampleMap)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	export := filepath.Join(t.TempDir(), "export.csv")
	if err := os.WriteFile(export, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := Import(store, export, FormatAuto)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d channels, want 2", n)
	}

	reloaded := NewTOML(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if got := reloaded.Names(); !reflect.DeepEqual(got, []string{"10-1", "6-1", "kcra", "kvie"}) {
		t.Errorf("Names() after import = %v", got)
	}
}

// countingStore wraps a Store and counts writes.
type countingStore struct {
	Store
	puts, merges int
}

func (s *countingStore) Put(ch Channel) error {
	s.puts++
	return s.Store.Put(ch)
}

func (s *countingStore) Merge(list []Channel) error {
	s.merges++
	return s.Store.Merge(list)
}

func TestImportWritesOnce(t *testing.T) {
	inner, _ := setupTestStore(t, "")
	store := &countingStore{Store: inner}
	export := filepath.Join(t.TempDir(), "export.csv")
	if err := os.WriteFile(export, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Import(store, export, FormatCSV); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if store.merges != 1 || store.puts != 0 {
		t.Errorf("merges = %d, puts = %d, want one merge and no puts", store.merges, store.puts)
	}
}

func TestMergeRejectsWholeBatch(t *testing.T) {
	store, path := setupTestStore(t, "")

	err := store.Merge([]Channel{
		{Name: "good", FrequencyKHz: 187250, VideoPID: 49, PCRPID: 48, AudioPID: 52},
		{Name: "bad", FrequencyKHz: 187250, AudioPID: 9000},
	})
	if err == nil {
		t.Fatal("expected Merge to fail")
	}
	if len(store.All()) != 0 {
		t.Errorf("map changed on failed merge: %v", store.Names())
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("channel map written on failed merge")
	}
}

func TestReadFileUnknownFormat(t *testing.T) {
	export := filepath.Join(t.TempDir(), "export.csv")
	if err := os.WriteFile(export, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(export, "xml"); err == nil {
		t.Error("expected unknown format error")
	}
}

func TestReadCSVZeroPaddedPIDs(t *testing.T) {
	csv := "Channel,Name,BroadcastFreq(kHz),PID_A,PID_B,PID_C\n6.1,KVIE,187250,0049,0048,0052\n"
	list, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if got := list[0].PIDs(); got != (tuner.PIDs{Video: 49, PCR: 48, Audio: 52}) {
		t.Errorf("PIDs = %+v, want decimal 49/48/52", got)
	}
}
