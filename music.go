package main

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// PlayerState is the music controller state.
type PlayerState int

const (
	StateStopped PlayerState = iota
	StatePlaying
	StatePaused
)

func (s PlayerState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

const noTrackLabel = "No song playing"

// MusicController owns the playlist and the loaded track. Progress is
// refreshed by an IntervalTimer that the event loop drives through Poll.
type MusicController struct {
	backend  AudioBackend
	playlist []string
	index    int
	track    Track

	state    PlayerState
	length   time.Duration
	dragging bool
	progress float64 // percent of length
	elapsed  time.Duration
	name     string

	timer   *IntervalTimer
	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
}

// NewMusicController creates a controller polling progress every interval.
func NewMusicController(backend AudioBackend, interval time.Duration) *MusicController {
	c := &MusicController{
		backend: backend,
		index:   -1,
		name:    noTrackLabel,
		now:     time.Now,
		shuffle: rand.Shuffle,
	}
	c.timer = NewIntervalTimer(interval, c.refreshProgress)
	return c
}

func (c *MusicController) State() PlayerState     { return c.state }
func (c *MusicController) Index() int             { return c.index }
func (c *MusicController) Length() time.Duration  { return c.length }
func (c *MusicController) Elapsed() time.Duration { return c.elapsed }
func (c *MusicController) Progress() float64      { return c.progress }
func (c *MusicController) Dragging() bool         { return c.dragging }
func (c *MusicController) TrackName() string      { return c.name }
func (c *MusicController) IsPlaying() bool        { return c.state == StatePlaying }
func (c *MusicController) PollingActive() bool    { return c.timer.Active() }

// Playlist returns a copy of the playlist.
func (c *MusicController) Playlist() []string {
	out := make([]string, len(c.playlist))
	copy(out, c.playlist)
	return out
}

// ElapsedLabel formats elapsed and total time as "m:ss / m:ss".
func (c *MusicController) ElapsedLabel() string {
	return formatClock(c.elapsed) + " / " + formatClock(c.length)
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Open replaces the playlist and loads, without playing, its first track.
// An empty selection leaves the controller unchanged.
func (c *MusicController) Open(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	c.Stop()
	c.playlist = append([]string(nil), paths...)
	c.index = 0
	return c.load()
}

// Play resumes a paused track, otherwise reloads the current track and
// starts it from the beginning.
func (c *MusicController) Play() error {
	if len(c.playlist) == 0 {
		return ErrEmptyPlaylist
	}
	if c.state == StatePaused && c.track != nil {
		c.track.Play()
		c.state = StatePlaying
		c.timer.Start(c.now())
		return nil
	}

	if err := c.load(); err != nil {
		return err
	}
	c.track.Play()
	c.state = StatePlaying
	c.timer.Start(c.now())
	log.Info().Str("track", c.name).Dur("length", c.length).Msg("playing")
	return nil
}

// Pause pauses playback, keeping the position.
func (c *MusicController) Pause() {
	if c.state != StatePlaying {
		return
	}
	c.track.Pause()
	c.state = StatePaused
	c.timer.Stop()
}

// TogglePlay pauses when playing and plays otherwise.
func (c *MusicController) TogglePlay() error {
	if c.state == StatePlaying {
		c.Pause()
		return nil
	}
	return c.Play()
}

// Next stops the current track and plays the following one, wrapping
// around at the end of the playlist.
func (c *MusicController) Next() error {
	if len(c.playlist) == 0 {
		return ErrEmptyPlaylist
	}
	c.Stop()
	c.index = (c.index + 1) % len(c.playlist)
	return c.Play()
}

// Shuffle permutes the playlist and loads, without playing, the new first track.
func (c *MusicController) Shuffle() error {
	if len(c.playlist) == 0 {
		return ErrEmptyPlaylist
	}
	c.Stop()
	c.shuffle(len(c.playlist), func(i, j int) {
		c.playlist[i], c.playlist[j] = c.playlist[j], c.playlist[i]
	})
	c.index = 0
	return c.load()
}

// Stop halts playback and cancels progress polling.
func (c *MusicController) Stop() {
	if c.track != nil && c.state != StateStopped {
		c.track.Pause()
	}
	c.finish()
}

// Close stops playback and releases the loaded track.
func (c *MusicController) Close() {
	c.Stop()
	c.release()
}

// Poll runs the progress refresh when it is due.
func (c *MusicController) Poll(now time.Time) {
	c.timer.Tick(now)
}

// BeginSeek suspends automatic progress updates while the indicator is dragged.
func (c *MusicController) BeginSeek() {
	if c.track == nil {
		return
	}
	c.dragging = true
}

// PreviewSeek moves the indicator during a drag without seeking.
func (c *MusicController) PreviewSeek(percent float64) {
	if !c.dragging {
		return
	}
	c.progress = clampPercent(percent)
}

// CancelSeek ends a drag without seeking.
func (c *MusicController) CancelSeek() {
	c.dragging = false
}

// EndSeek seeks to percent of the track length and resumes automatic updates.
func (c *MusicController) EndSeek(percent float64) error {
	if !c.dragging {
		return nil
	}
	c.dragging = false
	if c.track == nil {
		return nil
	}

	percent = clampPercent(percent)
	pos := time.Duration(float64(c.length) * percent / 100)
	if err := c.track.SetPosition(pos); err != nil {
		return fmt.Errorf("unable to seek to %s: %w", formatClock(pos), err)
	}
	c.progress = percent
	c.elapsed = pos
	return nil
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// refreshProgress is the timer callback.
func (c *MusicController) refreshProgress() {
	if c.state != StatePlaying || c.dragging || c.track == nil {
		return
	}

	elapsed := c.track.Position()
	if (c.length > 0 && elapsed >= c.length) || !c.track.IsPlaying() {
		debugLog("Track finished: %s", c.name)
		if c.track.IsPlaying() {
			c.track.Pause()
		}
		c.finish()
		return
	}

	c.elapsed = elapsed
	if c.length > 0 {
		c.progress = float64(elapsed) / float64(c.length) * 100
	} else {
		c.progress = 0
	}
}

// finish moves to Stopped and resets the indicator.
func (c *MusicController) finish() {
	c.state = StateStopped
	c.timer.Stop()
	c.progress = 0
	c.elapsed = 0
}

func (c *MusicController) release() {
	if c.track == nil {
		return
	}
	if err := c.track.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close track")
	}
	c.track = nil
}

// load replaces the loaded track with playlist[index].
func (c *MusicController) load() error {
	c.release()
	path := c.playlist[c.index]
	c.name = filepath.Base(path)
	c.length = 0

	track, err := c.backend.Load(path)
	if err != nil {
		return err
	}
	c.track = track
	c.length = track.Duration()
	if title := track.Title(); title != "" {
		c.name = title
	}
	c.progress = 0
	c.elapsed = 0
	return nil
}
