// Package pcm holds helpers for 16-bit linear PCM audio and the RIFF/WAVE
// container it is stored in.
package pcm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// ErrNotWAV is returned when data is not a RIFF/WAVE stream.
var ErrNotWAV = errors.New("not a RIFF/WAVE stream")

// Format represents PCM audio format parameters
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// DefaultFormat returns the format requested from backends that return
// headerless PCM (16 kHz, mono, 16-bit).
func DefaultFormat() Format {
	return Format{
		SampleRate: 16000,
		Channels:   1,
		BitDepth:   16,
	}
}

// BytesPerFrame returns the number of bytes per sample frame
func (f Format) BytesPerFrame() int {
	return f.BitDepth / 8 * f.Channels
}

// Duration calculates the duration of dataLen bytes of PCM audio
func (f Format) Duration(dataLen int) time.Duration {
	if f.SampleRate == 0 || f.BytesPerFrame() == 0 {
		return 0
	}
	frames := dataLen / f.BytesPerFrame()
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}

// Silence generates silent PCM data for the given duration
func Silence(d time.Duration, f Format) []byte {
	frames := int(d * time.Duration(f.SampleRate) / time.Second)
	return make([]byte, frames*f.BytesPerFrame())
}

const headerSize = 44

// EncodeWAV wraps headerless PCM data in a canonical 44-byte WAV header.
func EncodeWAV(data []byte, f Format) []byte {
	var buf bytes.Buffer
	buf.Grow(headerSize + len(data))

	blockAlign := f.BytesPerFrame()
	byteRate := f.SampleRate * blockAlign

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+len(data))) //nolint:gosec
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(f.Channels))   //nolint:gosec
	_ = binary.Write(&buf, binary.LittleEndian, uint32(f.SampleRate)) //nolint:gosec
	_ = binary.Write(&buf, binary.LittleEndian, uint32(byteRate))     //nolint:gosec
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))   //nolint:gosec
	_ = binary.Write(&buf, binary.LittleEndian, uint16(f.BitDepth))   //nolint:gosec

	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(data))) //nolint:gosec
	buf.Write(data)

	return buf.Bytes()
}

// DecodeWAV returns the format and sample data of a WAV stream. Chunks
// other than "fmt " and "data" are skipped.
func DecodeWAV(wav []byte) (Format, []byte, error) {
	if len(wav) < 12 || string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return Format{}, nil, ErrNotWAV
	}

	var (
		format  Format
		haveFmt bool
	)
	pos := 12
	for pos+8 <= len(wav) {
		id := string(wav[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		body := pos + 8
		end := body + size
		if size < 0 || end > len(wav) {
			// Streams written before their length was known carry a bogus
			// data size; take what is there.
			if id == "data" && haveFmt {
				return format, wav[body:], nil
			}
			return Format{}, nil, fmt.Errorf("%w: chunk %q overruns stream", ErrNotWAV, id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return Format{}, nil, fmt.Errorf("%w: short fmt chunk", ErrNotWAV)
			}
			if tag := binary.LittleEndian.Uint16(wav[body : body+2]); tag != 1 {
				return Format{}, nil, fmt.Errorf("unsupported WAV format tag %d", tag)
			}
			format = Format{
				Channels:   int(binary.LittleEndian.Uint16(wav[body+2 : body+4])),
				SampleRate: int(binary.LittleEndian.Uint32(wav[body+4 : body+8])),
				BitDepth:   int(binary.LittleEndian.Uint16(wav[body+14 : body+16])),
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return Format{}, nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrNotWAV)
			}
			return format, wav[body:end], nil
		}

		// Chunks are word aligned.
		pos = end + size%2
	}

	return Format{}, nil, fmt.Errorf("%w: no data chunk", ErrNotWAV)
}
