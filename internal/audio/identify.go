package audio

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dhowden/tag"
)

// ErrUnsupportedFormat is returned when the data is not in a decodable format.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Kind identifies the container/codec of encoded audio data.
type Kind int

const (
	KindUnknown Kind = iota
	KindMP3
	KindFLAC
	KindWAV
	KindVorbis
)

// String returns the display name of the format.
func (k Kind) String() string {
	switch k {
	case KindMP3:
		return "MP3"
	case KindFLAC:
		return "FLAC"
	case KindWAV:
		return "WAV"
	case KindVorbis:
		return "OGG"
	default:
		return "Unknown"
	}
}

// Identify determines the format of encoded audio from its leading bytes.
// Tag-bearing containers are recognized by dhowden/tag; WAV and bare MPEG
// frames (no ID3 header) are sniffed directly.
func Identify(data []byte) (Kind, error) {
	if len(data) < 12 {
		return KindUnknown, fmt.Errorf("%w: %d bytes", ErrUnsupportedFormat, len(data))
	}

	if body := stripID3v2(data); len(body) >= 4 && string(body[0:4]) == "fLaC" {
		return KindFLAC, nil
	}

	_, fileType, err := tag.Identify(bytes.NewReader(data))
	if err == nil {
		switch fileType {
		case tag.MP3:
			return KindMP3, nil
		case tag.FLAC:
			return KindFLAC, nil
		case tag.OGG:
			if isOggOpus(data) {
				return KindUnknown, fmt.Errorf("%w: ogg/opus", ErrUnsupportedFormat)
			}
			return KindVorbis, nil
		case tag.M4A, tag.M4B, tag.M4P, tag.ALAC:
			return KindUnknown, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileType)
		}
	}

	switch {
	case string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return KindWAV, nil
	case isMPEGFrameSync(data):
		return KindMP3, nil
	}
	return KindUnknown, ErrUnsupportedFormat
}

// isMPEGFrameSync reports whether data starts with an MPEG audio frame
// header (11 set sync bits, layer III).
func isMPEGFrameSync(data []byte) bool {
	if data[0] != 0xFF || data[1]&0xE0 != 0xE0 {
		return false
	}
	layer := (data[1] >> 1) & 0x03
	return layer == 0x01
}

// isOggOpus reports whether the first Ogg packet is an Opus header.
func isOggOpus(data []byte) bool {
	head := data[:min(len(data), 64)]
	return bytes.Contains(head, []byte("OpusHead"))
}

// stripID3v2 skips an ID3v2 tag prepended to the data, if any. Some taggers
// add one to FLAC files and the FLAC decoder does not handle it.
func stripID3v2(data []byte) []byte {
	if len(data) < 10 || string(data[0:3]) != "ID3" {
		return data
	}
	// Syncsafe integer: each byte only uses 7 bits.
	size := int(data[6])<<21 | int(data[7])<<14 | int(data[8])<<7 | int(data[9])
	end := 10 + size
	if end > len(data) {
		return data
	}
	return data[end:]
}
