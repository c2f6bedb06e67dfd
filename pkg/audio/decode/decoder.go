// ABOUTME: Decoder interface and asset loader with base-path probing
// ABOUTME: Resolves a base path against literal, .mp3, .wav and .ogg variants
package decode

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"

	"github.com/platterlabs/platter/pkg/audio"
)

// Decoder decodes a complete encoded stream into a PCM buffer.
type Decoder interface {
	Decode(r io.Reader) (*audio.Buffer, error)
}

// probeOrder is the list of extensions appended to a base path, tried
// after the literal path.
var probeOrder = []string{".mp3", ".wav", ".ogg"}

// Loader resolves base asset paths against a filesystem and decodes
// the first variant that succeeds.
type Loader struct {
	fsys     fs.FS
	decoders map[string]Decoder
}

// NewLoader creates a loader with the default decoders registered.
func NewLoader(fsys fs.FS) *Loader {
	l := &Loader{
		fsys:     fsys,
		decoders: make(map[string]Decoder),
	}
	l.Register(".mp3", MP3Decoder{})
	l.Register(".wav", WAVDecoder{})
	l.Register(".ogg", VorbisDecoder{})
	return l
}

// Register installs or replaces the decoder for a file extension
// (including the leading dot).
func (l *Loader) Register(ext string, d Decoder) {
	l.decoders[strings.ToLower(ext)] = d
}

// Load tries the literal path (when it already carries a known
// extension), then each probe extension appended to the base path. It
// returns the decoded buffer and the path that actually resolved.
func (l *Loader) Load(basePath string) (*audio.Buffer, string, error) {
	if ext := extensionOf(basePath); ext != "" {
		if _, ok := l.decoders[ext]; ok {
			if buf, err := l.tryPath(basePath); err == nil {
				return buf, basePath, nil
			}
		}
	}

	for _, ext := range probeOrder {
		candidate := basePath + ext
		buf, err := l.tryPath(candidate)
		if err != nil {
			continue
		}
		return buf, candidate, nil
	}

	return nil, "", fmt.Errorf("%w: %s", ErrNoPlayableAsset, basePath)
}

// tryPath opens and decodes a single candidate path.
func (l *Loader) tryPath(path string) (*audio.Buffer, error) {
	dec, ok := l.decoders[extensionOf(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	f, err := l.fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyAudio, path)
	}

	log.Printf("Loaded %s: %d frames, %d channels, %d Hz", path, buf.Frames, buf.Channels, buf.SampleRate)
	return buf, nil
}

// extensionOf returns the lowercased extension of path, or "".
func extensionOf(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || strings.ContainsRune(path[idx:], '/') {
		return ""
	}
	return strings.ToLower(path[idx:])
}
