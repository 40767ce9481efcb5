// Package audiotest builds small in-memory audio fixtures for tests.
package audiotest

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/wavelet/internal/audio"
)

// SampleRate is deliberately low so long fixtures stay small.
const SampleRate = beep.SampleRate(1000)

// constStreamer produces n frames of a constant value.
type constStreamer struct {
	remaining int
	value     float64
}

func (s *constStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.remaining <= 0 {
		return 0, false
	}
	n := min(len(samples), s.remaining)
	for i := range n {
		samples[i] = [2]float64{s.value, s.value}
	}
	s.remaining -= n
	return n, true
}

func (s *constStreamer) Err() error { return nil }

// Asset returns a decoded asset of the given duration.
func Asset(d time.Duration) *audio.Asset {
	return AssetWithInfo(d, audio.Info{Title: "fixture", Kind: audio.KindWAV})
}

// AssetWithInfo returns a decoded asset of the given duration and metadata.
func AssetWithInfo(d time.Duration, info audio.Info) *audio.Asset {
	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	buf.Append(&constStreamer{remaining: SampleRate.N(d), value: 0.25})
	return audio.NewAsset(buf, info, 0)
}

// WAV encodes d of 16-bit mono PCM at sampleRate as a RIFF/WAVE file.
func WAV(sampleRate int, d time.Duration) []byte {
	frames := int(d.Seconds() * float64(sampleRate))
	dataSize := frames * 2

	var b bytes.Buffer
	b.WriteString("RIFF")
	_ = binary.Write(&b, binary.LittleEndian, uint32(36+dataSize)) //nolint:gosec // fixture sizes
	b.WriteString("WAVE")

	b.WriteString("fmt ")
	_ = binary.Write(&b, binary.LittleEndian, uint32(16))
	_ = binary.Write(&b, binary.LittleEndian, uint16(1))            // PCM
	_ = binary.Write(&b, binary.LittleEndian, uint16(1))            // mono
	_ = binary.Write(&b, binary.LittleEndian, uint32(sampleRate))   //nolint:gosec // fixture sizes
	_ = binary.Write(&b, binary.LittleEndian, uint32(sampleRate*2)) //nolint:gosec // fixture sizes
	_ = binary.Write(&b, binary.LittleEndian, uint16(2))            // block align
	_ = binary.Write(&b, binary.LittleEndian, uint16(16))           // bits per sample

	b.WriteString("data")
	_ = binary.Write(&b, binary.LittleEndian, uint32(dataSize)) //nolint:gosec // fixture sizes
	for i := range frames {
		v := int16(1000)
		if i%2 == 1 {
			v = -1000
		}
		_ = binary.Write(&b, binary.LittleEndian, v)
	}
	return b.Bytes()
}
