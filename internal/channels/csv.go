package channels

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/smazurov/dvbtune/internal/tuner"
)

// CSV column names of a tuner vendor channel export.
const (
	ColumnChannel   = "Channel"
	ColumnName      = "Name"
	ColumnFrequency = "BroadcastFreq(kHz)"
	ColumnPIDA      = "PID_A"
	ColumnPIDB      = "PID_B"
	ColumnPIDC      = "PID_C"
)

var requiredColumns = []string{ColumnChannel, ColumnName, ColumnFrequency, ColumnPIDA, ColumnPIDB, ColumnPIDC}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// ReadCSV parses a channel export. PID_A, PID_B and PID_C are the video,
// PCR and audio PIDs. The Channel column (e.g. "6.1") becomes the map key
// with characters outside [A-Za-z0-9_-] replaced by "-".
func ReadCSV(r io.Reader) ([]Channel, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("channel CSV is empty")
		}
		return nil, fmt.Errorf("failed to read channel CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("channel CSV is missing column %q", col)
		}
	}

	var out []Channel
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read channel CSV: %w", err)
		}

		line, _ := reader.FieldPos(0)
		field := func(col string) string {
			if i := index[col]; i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		ch := Channel{
			Name:        unsafeKeyChars.ReplaceAllString(field(ColumnChannel), "-"),
			Description: field(ColumnName),
		}

		freq, err := strconv.ParseUint(field(ColumnFrequency), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid frequency %q: %w", line, field(ColumnFrequency), err)
		}
		ch.FrequencyKHz = uint32(freq)

		for _, p := range []struct {
			col string
			dst *uint16
		}{
			{ColumnPIDA, &ch.VideoPID},
			{ColumnPIDB, &ch.PCRPID},
			{ColumnPIDC, &ch.AudioPID},
		} {
			pid, err := tuner.ParsePID(field(p.col))
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid %s: %w", line, p.col, err)
			}
			*p.dst = pid
		}

		if err := ch.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, ch)
	}
	return out, nil
}
