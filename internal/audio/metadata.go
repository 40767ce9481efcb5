package audio

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
)

// ReadInfo extracts title/artist/album tags from encoded data. Missing titles
// fall back to the base name of the source reference.
func ReadInfo(data []byte, kind Kind, name string) Info {
	info := Info{Kind: kind}

	m, err := tag.ReadFrom(bytes.NewReader(data))
	switch {
	case err == nil:
		info.Title = strings.TrimSpace(m.Title())
		info.Artist = strings.TrimSpace(m.Artist())
		info.Album = strings.TrimSpace(m.Album())
	case kind == KindMP3:
		// dhowden/tag has issues with some UTF-16 encoded ID3 frames
		if fallback, ok := readID3v2(data); ok {
			info.Title = fallback.Title
			info.Artist = fallback.Artist
			info.Album = fallback.Album
		}
	}

	if info.Title == "" {
		info.Title = BaseName(name)
	}
	return info
}

// readID3v2 reads the text frames with bogem/id3v2.
func readID3v2(data []byte) (Info, bool) {
	t, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
	if err != nil {
		return Info{}, false
	}
	return Info{
		Title:  strings.TrimSpace(t.Title()),
		Artist: strings.TrimSpace(t.Artist()),
		Album:  strings.TrimSpace(t.Album()),
	}, true
}

// BaseName returns the last path element of a URL or file path, without
// query string or fragment.
func BaseName(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		ref = u.Path
	}
	base := path.Base(strings.ReplaceAll(ref, "\\", "/"))
	if base == "." || base == "/" {
		return ref
	}
	if unescaped, err := url.PathUnescape(base); err == nil {
		return unescaped
	}
	return base
}
