package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrEmpty is returned when the data decodes to zero samples.
var ErrEmpty = errors.New("audio decoded to zero samples")

// Decode identifies and fully decodes encoded audio into an Asset.
// name is used as the title when the data carries no title tag.
func Decode(data []byte, name string) (*Asset, error) {
	kind, err := Identify(data)
	if err != nil {
		return nil, err
	}

	streamer, format, err := openStreamer(kind, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	if buf.Len() == 0 {
		return nil, ErrEmpty
	}

	info := ReadInfo(data, kind, name)
	return NewAsset(buf, info, len(data)), nil
}

func openStreamer(kind Kind, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	switch kind {
	case KindMP3:
		return decodeGoMP3(readSeekNopCloser{bytes.NewReader(data)})
	case KindFLAC:
		return flac.Decode(bytes.NewReader(stripID3v2(data)))
	case KindWAV:
		return wav.Decode(bytes.NewReader(data))
	case KindVorbis:
		return vorbis.Decode(io.NopCloser(bytes.NewReader(data)))
	default:
		return nil, beep.Format{}, ErrUnsupportedFormat
	}
}

// readSeekNopCloser keeps the reader seekable so go-mp3 can index frames
// and report an exact sample count.
type readSeekNopCloser struct{ *bytes.Reader }

func (readSeekNopCloser) Close() error { return nil }
