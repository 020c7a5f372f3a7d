package channels

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Export formats accepted by ReadFile.
const (
	FormatAuto = ""
	FormatCSV  = "csv"
	FormatCHL  = "chl"
)

// ReadFile parses a channel export. FormatAuto picks CHL for a .chl
// extension and CSV otherwise.
func ReadFile(path, format string) ([]Channel, error) {
	if format == FormatAuto {
		format = FormatCSV
		if strings.EqualFold(filepath.Ext(path), ".chl") {
			format = FormatCHL
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format {
	case FormatCSV:
		return ReadCSV(f)
	case FormatCHL:
		st, err := f.Stat()
		if err != nil {
			return nil, err
		}
		return ReadCHL(f, st.Size())
	default:
		return nil, fmt.Errorf("unknown channel export format %q (want %s or %s)", format, FormatCSV, FormatCHL)
	}
}

// Import merges every channel of an export into the store with a single
// save. Nothing is written unless the whole export parses.
func Import(s Store, path, format string) (int, error) {
	list, err := ReadFile(path, format)
	if err != nil {
		return 0, err
	}
	if err := s.Merge(list); err != nil {
		return 0, fmt.Errorf("failed to import channels: %w", err)
	}
	return len(list), nil
}
