package sound

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Format describes 16-bit little-endian PCM audio.
type Format struct {
	SampleRate   int
	ChannelCount int
}

// parseWAV validates a RIFF/WAVE file and returns its PCM payload. Only
// uncompressed 16-bit PCM is accepted since that is what the player opens.
func parseWAV(wav []byte) (Format, []byte, error) {
	if len(wav) < 44 {
		return Format{}, nil, errors.New("wav data too short")
	}

	// Verify RIFF header.
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return Format{}, nil, errors.New("not a valid WAV file")
	}

	var (
		f      Format
		gotFmt bool
	)

	// Walk chunks to find "fmt " and "data".
	pos := 12
	for pos+8 <= len(wav) {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		start := pos + 8

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 || start+16 > len(wav) {
				return Format{}, nil, errors.New("truncated fmt chunk")
			}
			audioFormat := binary.LittleEndian.Uint16(wav[start : start+2])
			channels := binary.LittleEndian.Uint16(wav[start+2 : start+4])
			rate := binary.LittleEndian.Uint32(wav[start+4 : start+8])
			bits := binary.LittleEndian.Uint16(wav[start+14 : start+16])
			if audioFormat != 1 || bits != 16 {
				return Format{}, nil, fmt.Errorf("unsupported WAV encoding (format=%d, bits=%d)", audioFormat, bits)
			}
			f = Format{SampleRate: int(rate), ChannelCount: int(channels)}
			gotFmt = true

		case "data":
			if !gotFmt {
				return Format{}, nil, errors.New("data chunk before fmt chunk")
			}
			end := start + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			return f, wav[start:end], nil
		}

		pos = start + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return Format{}, nil, errors.New("data chunk not found in WAV")
}
