// Package audio holds decoded, in-memory audio assets and the decoders that
// produce them.
package audio

import (
	"time"

	"github.com/gopxl/beep/v2"
)

// Info describes where an asset came from and what it contains.
type Info struct {
	Title  string
	Artist string
	Album  string
	Kind   Kind
}

// Asset is a fully decoded audio buffer. It is immutable once built: every
// playback reads it through a fresh streamer, so one asset can back any
// number of sequential playbacks.
type Asset struct {
	buf  *beep.Buffer
	info Info
	size int
}

// NewAsset wraps a decoded buffer. size is the number of encoded bytes the
// buffer was decoded from (0 if unknown).
func NewAsset(buf *beep.Buffer, info Info, size int) *Asset {
	return &Asset{buf: buf, info: info, size: size}
}

// Duration returns the total playable length.
func (a *Asset) Duration() time.Duration {
	if a == nil || a.buf == nil {
		return 0
	}
	return a.buf.Format().SampleRate.D(a.buf.Len())
}

// Len returns the number of samples in the buffer.
func (a *Asset) Len() int {
	if a == nil || a.buf == nil {
		return 0
	}
	return a.buf.Len()
}

// Format returns the sample format of the decoded buffer.
func (a *Asset) Format() beep.Format {
	return a.buf.Format()
}

// Info returns the asset's descriptive metadata.
func (a *Asset) Info() Info {
	return a.info
}

// Size returns the encoded size in bytes.
func (a *Asset) Size() int {
	return a.size
}

// SampleAt converts an offset into a sample index clamped to the buffer.
func (a *Asset) SampleAt(offset time.Duration) int {
	n := a.buf.Format().SampleRate.N(offset)
	return min(max(n, 0), a.buf.Len())
}

// Streamer returns a new streamer reading the buffer from offset to the end.
func (a *Asset) Streamer(offset time.Duration) beep.StreamSeeker {
	return a.buf.Streamer(a.SampleAt(offset), a.buf.Len())
}
