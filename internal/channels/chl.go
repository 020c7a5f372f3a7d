package channels

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf16"

	"github.com/smazurov/dvbtune/pkg/linuxav/dvb"
)

// Layout of a tuner vendor .chl channel file. The file starts with a
// header of little-endian int32 values, the first being the offset of the
// first record. Every record carries the same UTF-16LE type string (e.g.
// "Digital TV") at chlTypeOffset, which is how the records are located.
const (
	chlHeaderSize    = 32
	chlNameOffset    = 540
	chlTypeOffset    = 1580
	chlNumbersOffset = 2632
	chlNumbersCount  = 22
	chlRecordMinSize = chlNumbersOffset + chlNumbersCount*4
)

// Indexes into a record's int32 block.
const (
	chlFrequency = 1
	chlPIDA      = 3
	chlPIDB      = 4
	chlPIDC      = 5
	chlMajor     = 18
	chlMinor     = 19
)

// ReadCHL parses a binary .chl channel file of the given size. Channels are
// keyed "<major>-<minor>" and described by the record's name; PID_A, PID_B
// and PID_C are the video, PCR and audio PIDs as in the CSV export.
func ReadCHL(r io.ReaderAt, size int64) ([]Channel, error) {
	data, err := io.ReadAll(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, fmt.Errorf("failed to read channel file: %w", err)
	}
	if len(data) < chlHeaderSize {
		return nil, fmt.Errorf("channel file is %d bytes, shorter than its header", len(data))
	}

	first := int64(int32(binary.LittleEndian.Uint32(data)))
	if first < chlHeaderSize || first+chlRecordMinSize > int64(len(data)) {
		return nil, fmt.Errorf("channel file first record offset %d out of range", first)
	}

	typ, err := utf16Field(data, int(first)+chlTypeOffset)
	if err != nil {
		return nil, fmt.Errorf("channel file record type: %w", err)
	}
	if len(typ) <= 2 {
		return nil, errors.New("channel file record type is empty")
	}

	var out []Channel
	for pos := 0; ; {
		i := bytes.Index(data[pos:], typ)
		if i < 0 {
			break
		}
		at := pos + i
		pos = at + len(typ)

		rec := at - chlTypeOffset
		if rec < chlHeaderSize {
			continue
		}
		if rec+chlRecordMinSize > len(data) {
			return nil, fmt.Errorf("channel record at %d is truncated", rec)
		}

		ch, err := chlRecord(data, rec)
		if err != nil {
			return nil, fmt.Errorf("channel record at %d: %w", rec, err)
		}
		out = append(out, ch)
	}

	if len(out) == 0 {
		return nil, errors.New("channel file has no records")
	}
	return out, nil
}

func chlRecord(data []byte, rec int) (Channel, error) {
	raw, err := utf16Field(data, rec+chlNameOffset)
	if err != nil {
		return Channel{}, fmt.Errorf("name: %w", err)
	}

	var nums [chlNumbersCount]int32
	block := data[rec+chlNumbersOffset:]
	for i := range nums {
		nums[i] = int32(binary.LittleEndian.Uint32(block[i*4:]))
	}

	ch := Channel{
		Name:        fmt.Sprintf("%d-%d", nums[chlMajor], nums[chlMinor]),
		Description: decodeUTF16(raw),
	}
	if nums[chlFrequency] <= 0 {
		return Channel{}, fmt.Errorf("invalid frequency %d", nums[chlFrequency])
	}
	ch.FrequencyKHz = uint32(nums[chlFrequency])

	for _, p := range []struct {
		name string
		v    int32
		dst  *uint16
	}{
		{"PID_A", nums[chlPIDA], &ch.VideoPID},
		{"PID_B", nums[chlPIDB], &ch.PCRPID},
		{"PID_C", nums[chlPIDC], &ch.AudioPID},
	} {
		if p.v < 0 || p.v > dvb.MaxPID {
			return Channel{}, fmt.Errorf("%s %d out of range [0, %d]", p.name, p.v, dvb.MaxPID)
		}
		*p.dst = uint16(p.v)
	}

	if err := ch.Validate(); err != nil {
		return Channel{}, err
	}
	return ch, nil
}

// utf16Field returns the UTF-16LE bytes at off up to and including the NUL
// terminator.
func utf16Field(data []byte, off int) ([]byte, error) {
	for i := off; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return data[off : i+2], nil
		}
	}
	return nil, errors.New("unterminated UTF-16 string")
}

func decodeUTF16(raw []byte) string {
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		u := binary.LittleEndian.Uint16(raw[i:])
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}
