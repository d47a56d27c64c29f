package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const (
	audioSampleRate = 44100
	// Decoded streams are 16-bit stereo.
	audioBytesPerFrame = 4
)

// Track is one loaded audio file.
type Track interface {
	Play()
	Pause()
	IsPlaying() bool
	Position() time.Duration
	SetPosition(pos time.Duration) error
	Duration() time.Duration
	Title() string
	Close() error
}

// AudioBackend loads audio files into playable tracks.
type AudioBackend interface {
	Load(path string) (Track, error)
}

func isAudioExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav", ".ogg":
		return true
	default:
		return false
	}
}

// EbitenAudio plays tracks through Ebiten's audio context.
type EbitenAudio struct {
	ctx    *audio.Context
	volume float64
}

// NewEbitenAudio creates the process-wide audio context.
func NewEbitenAudio(volume float64) *EbitenAudio {
	return &EbitenAudio{
		ctx:    audio.NewContext(audioSampleRate),
		volume: volume,
	}
}

// Load reads the whole file into memory and prepares a paused player.
func (a *EbitenAudio) Load(path string) (Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", filepath.Base(path), err)
	}

	stream, length, err := decodeAudio(path, data)
	if err != nil {
		return nil, err
	}

	player, err := a.ctx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("unable to create player for %s: %w", filepath.Base(path), err)
	}
	player.SetVolume(a.volume)

	debugLog("Loaded track %s (%s)", path, length)
	return &ebitenTrack{
		player: player,
		length: length,
		title:  trackTitle(path, data),
	}, nil
}

// decodeAudio picks the decoder by extension and reports the track length.
// MP3 length comes from the frame scan the decoder performs; the other
// formats answer through the generic stream length.
func decodeAudio(path string, data []byte) (io.ReadSeeker, time.Duration, error) {
	src := bytes.NewReader(data)
	name := filepath.Base(path)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(audioSampleRate, src)
		if err != nil {
			return nil, 0, fmt.Errorf("decoding %s: %w", name, err)
		}
		return s, mp3Duration(s), nil
	case ".wav":
		s, err := wav.DecodeWithSampleRate(audioSampleRate, src)
		if err != nil {
			return nil, 0, fmt.Errorf("decoding %s: %w", name, err)
		}
		return s, streamDuration(s), nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(audioSampleRate, src)
		if err != nil {
			return nil, 0, fmt.Errorf("decoding %s: %w", name, err)
		}
		return s, streamDuration(s), nil
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
	}
}

func mp3Duration(s *mp3.Stream) time.Duration {
	return bytesToDuration(s.Length())
}

type lengthStream interface {
	Length() int64
}

func streamDuration(s lengthStream) time.Duration {
	return bytesToDuration(s.Length())
}

func bytesToDuration(n int64) time.Duration {
	if n <= 0 {
		return 0
	}
	frames := n / audioBytesPerFrame
	return time.Duration(frames) * time.Second / audioSampleRate
}

// trackTitle prefers "Artist - Title" from embedded tags.
func trackTitle(path string, data []byte) string {
	fallback := filepath.Base(path)
	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return fallback
	}
	title := strings.TrimSpace(m.Title())
	artist := strings.TrimSpace(m.Artist())
	switch {
	case title != "" && artist != "":
		return artist + " - " + title
	case title != "":
		return title
	default:
		return fallback
	}
}

type ebitenTrack struct {
	player *audio.Player
	length time.Duration
	title  string
}

func (t *ebitenTrack) Play()                   { t.player.Play() }
func (t *ebitenTrack) Pause()                  { t.player.Pause() }
func (t *ebitenTrack) IsPlaying() bool         { return t.player.IsPlaying() }
func (t *ebitenTrack) Position() time.Duration { return t.player.Position() }
func (t *ebitenTrack) Duration() time.Duration { return t.length }
func (t *ebitenTrack) Title() string           { return t.title }

func (t *ebitenTrack) SetPosition(pos time.Duration) error {
	return t.player.SetPosition(pos)
}

func (t *ebitenTrack) Close() error {
	return t.player.Close()
}
