package main

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeTrack struct {
	path     string
	playing  bool
	pos      time.Duration
	length   time.Duration
	title    string
	closed   bool
	plays    int
	seekErr  error
	seekedTo time.Duration
}

func (t *fakeTrack) Pause()                  { t.playing = false }
func (t *fakeTrack) IsPlaying() bool         { return t.playing }
func (t *fakeTrack) Position() time.Duration { return t.pos }
func (t *fakeTrack) Duration() time.Duration { return t.length }
func (t *fakeTrack) Title() string           { return t.title }

func (t *fakeTrack) Play() {
	t.playing = true
	t.plays++
}

func (t *fakeTrack) Close() error {
	t.closed = true
	return nil
}

func (t *fakeTrack) SetPosition(pos time.Duration) error {
	if t.seekErr != nil {
		return t.seekErr
	}
	t.seekedTo = pos
	t.pos = pos
	return nil
}

type fakeBackend struct {
	loaded []*fakeTrack
	fail   map[string]error
	length time.Duration
}

func (b *fakeBackend) Load(path string) (Track, error) {
	if err := b.fail[path]; err != nil {
		return nil, err
	}
	length := b.length
	if length == 0 {
		length = 3 * time.Minute
	}
	t := &fakeTrack{path: path, length: length}
	b.loaded = append(b.loaded, t)
	return t, nil
}

func (b *fakeBackend) last() *fakeTrack {
	if len(b.loaded) == 0 {
		return nil
	}
	return b.loaded[len(b.loaded)-1]
}

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestMusic(backend *fakeBackend) *MusicController {
	c := NewMusicController(backend, time.Second)
	c.now = func() time.Time { return testEpoch }
	return c
}

func TestMusicOpen(t *testing.T) {
	backend := &fakeBackend{}
	c := newTestMusic(backend)

	if err := c.Open(nil); err != nil {
		t.Fatalf("Open(nil): %v", err)
	}
	if c.Index() != -1 || c.TrackName() != noTrackLabel {
		t.Errorf("empty selection changed state: index=%d name=%q", c.Index(), c.TrackName())
	}

	paths := []string{"/music/a.mp3", "/music/b.mp3"}
	if err := c.Open(paths); err != nil {
		t.Fatalf("Open: %v", err)
	}
	paths[0] = "mutated"

	if diff := cmp.Diff([]string{"/music/a.mp3", "/music/b.mp3"}, c.Playlist()); diff != "" {
		t.Errorf("playlist mismatch (-want +got):\n%s", diff)
	}
	if c.Index() != 0 {
		t.Errorf("Expected index 0, got %d", c.Index())
	}
	if c.State() != StateStopped {
		t.Errorf("Expected stopped after open, got %v", c.State())
	}
	if c.TrackName() != "a.mp3" {
		t.Errorf("Expected track name a.mp3, got %q", c.TrackName())
	}
	if backend.last().playing {
		t.Error("Open should not start playback")
	}
}

func TestMusicPlayWithoutPlaylist(t *testing.T) {
	c := newTestMusic(&fakeBackend{})
	if err := c.Play(); !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("Expected ErrEmptyPlaylist, got %v", err)
	}
	if err := c.Next(); !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("Expected ErrEmptyPlaylist from Next, got %v", err)
	}
	if err := c.Shuffle(); !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("Expected ErrEmptyPlaylist from Shuffle, got %v", err)
	}
}

func TestMusicPlayPauseResume(t *testing.T) {
	backend := &fakeBackend{}
	c := newTestMusic(backend)
	if err := c.Open([]string{"a.mp3"}); err != nil {
		t.Fatal(err)
	}

	if err := c.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	playing := backend.last()
	if c.State() != StatePlaying || !playing.playing {
		t.Fatalf("Expected playing, got %v", c.State())
	}
	if !c.PollingActive() {
		t.Error("Expected polling to start with playback")
	}

	playing.pos = 30 * time.Second
	c.Pause()
	if c.State() != StatePaused || playing.playing {
		t.Errorf("Expected paused, got %v", c.State())
	}
	if c.PollingActive() {
		t.Error("Expected polling to stop while paused")
	}

	loads := len(backend.loaded)
	if err := c.TogglePlay(); err != nil {
		t.Fatalf("TogglePlay: %v", err)
	}
	if len(backend.loaded) != loads {
		t.Error("Resuming should not reload the track")
	}
	if playing.pos != 30*time.Second {
		t.Errorf("Resume lost position: %v", playing.pos)
	}
	if c.State() != StatePlaying {
		t.Errorf("Expected playing after toggle, got %v", c.State())
	}

	if err := c.TogglePlay(); err != nil {
		t.Fatal(err)
	}
	if c.State() != StatePaused {
		t.Errorf("Expected paused after second toggle, got %v", c.State())
	}
}

func TestMusicPlayFromStoppedRestarts(t *testing.T) {
	backend := &fakeBackend{}
	c := newTestMusic(backend)
	if err := c.Open([]string{"a.mp3"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	first := backend.last()
	first.pos = time.Minute
	c.Stop()

	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	second := backend.last()
	if second == first {
		t.Fatal("Expected the track to be reloaded")
	}
	if !first.closed {
		t.Error("Expected the previous track to be closed")
	}
	if second.pos != 0 {
		t.Errorf("Expected restart from 0, got %v", second.pos)
	}
}

func TestMusicNextWraps(t *testing.T) {
	backend := &fakeBackend{}
	c := newTestMusic(backend)
	if err := c.Open([]string{"a.mp3", "b.mp3", "c.mp3"}); err != nil {
		t.Fatal(err)
	}

	var got []int
	for range 4 {
		if err := c.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, c.Index())
		if c.State() != StatePlaying {
			t.Errorf("Expected Next to play, got %v", c.State())
		}
	}
	if diff := cmp.Diff([]int{1, 2, 0, 1}, got); diff != "" {
		t.Errorf("index sequence mismatch (-want +got):\n%s", diff)
	}
	if backend.last().path != "b.mp3" {
		t.Errorf("Expected b.mp3 loaded, got %s", backend.last().path)
	}
}

func TestMusicShuffle(t *testing.T) {
	backend := &fakeBackend{}
	c := newTestMusic(backend)
	paths := []string{"a.mp3", "b.mp3", "c.mp3", "d.mp3"}
	if err := c.Open(paths); err != nil {
		t.Fatal(err)
	}
	if err := c.Next(); err != nil {
		t.Fatal(err)
	}

	// Reverse deterministically.
	c.shuffle = func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	if err := c.Shuffle(); err != nil {
		t.Fatalf("Shuffle: %v", err)
	}

	if diff := cmp.Diff([]string{"d.mp3", "c.mp3", "b.mp3", "a.mp3"}, c.Playlist()); diff != "" {
		t.Errorf("playlist mismatch (-want +got):\n%s", diff)
	}
	if c.Index() != 0 {
		t.Errorf("Expected index 0, got %d", c.Index())
	}
	if c.State() == StatePlaying || backend.last().playing {
		t.Error("Shuffle should not start playback")
	}
	if backend.last().path != "d.mp3" {
		t.Errorf("Expected d.mp3 loaded, got %s", backend.last().path)
	}
}

func TestMusicShuffleKeepsEntries(t *testing.T) {
	c := newTestMusic(&fakeBackend{})
	paths := []string{"a.mp3", "b.mp3", "b.mp3", "c.ogg", "d.wav"}
	if err := c.Open(paths); err != nil {
		t.Fatal(err)
	}
	for range 10 {
		if err := c.Shuffle(); err != nil {
			t.Fatal(err)
		}
		got := c.Playlist()
		slices.Sort(got)
		if diff := cmp.Diff([]string{"a.mp3", "b.mp3", "b.mp3", "c.ogg", "d.wav"}, got); diff != "" {
			t.Fatalf("shuffle changed entries (-want +got):\n%s", diff)
		}
	}
}

func TestMusicProgress(t *testing.T) {
	backend := &fakeBackend{length: 100 * time.Second}
	c := newTestMusic(backend)
	if err := c.Open([]string{"a.mp3"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	track := backend.last()

	track.pos = 25 * time.Second
	c.Poll(testEpoch.Add(500 * time.Millisecond))
	if c.Elapsed() != 0 {
		t.Errorf("Poll before the interval should not update, got %v", c.Elapsed())
	}

	c.Poll(testEpoch.Add(time.Second))
	if c.Elapsed() != 25*time.Second {
		t.Errorf("Expected 25s elapsed, got %v", c.Elapsed())
	}
	if c.Progress() != 25 {
		t.Errorf("Expected 25%%, got %v", c.Progress())
	}
	if got := c.ElapsedLabel(); got != "0:25 / 1:40" {
		t.Errorf("Expected label 0:25 / 1:40, got %q", got)
	}
}

func TestMusicTrackEnd(t *testing.T) {
	tests := []struct {
		name    string
		advance func(*fakeTrack)
	}{
		{"position reaches length", func(tr *fakeTrack) { tr.pos = tr.length }},
		{"player stopped", func(tr *fakeTrack) { tr.playing = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{length: time.Minute}
			c := newTestMusic(backend)
			if err := c.Open([]string{"a.mp3", "b.mp3"}); err != nil {
				t.Fatal(err)
			}
			if err := c.Play(); err != nil {
				t.Fatal(err)
			}
			tt.advance(backend.last())

			c.Poll(testEpoch.Add(time.Second))

			if c.State() != StateStopped {
				t.Errorf("Expected stopped, got %v", c.State())
			}
			if c.Progress() != 0 || c.Elapsed() != 0 {
				t.Errorf("Expected indicator reset, got %v / %v", c.Progress(), c.Elapsed())
			}
			if c.PollingActive() {
				t.Error("Expected polling to stop at track end")
			}
			if c.Index() != 0 {
				t.Errorf("Track end should not advance, got index %d", c.Index())
			}
			if backend.last().playing {
				t.Error("Expected the track to be paused at track end")
			}
		})
	}
}

func TestMusicSeek(t *testing.T) {
	backend := &fakeBackend{length: 200 * time.Second}
	c := newTestMusic(backend)
	if err := c.Open([]string{"a.mp3"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	track := backend.last()
	track.pos = 10 * time.Second

	c.BeginSeek()
	if !c.Dragging() {
		t.Fatal("Expected dragging")
	}
	c.PreviewSeek(80)
	c.Poll(testEpoch.Add(5 * time.Second))
	if c.Progress() != 80 {
		t.Errorf("Polling while dragging should not move the indicator, got %v", c.Progress())
	}

	if err := c.EndSeek(50); err != nil {
		t.Fatalf("EndSeek: %v", err)
	}
	if c.Dragging() {
		t.Error("Expected dragging to end")
	}
	if track.seekedTo != 100*time.Second {
		t.Errorf("Expected seek to 100s, got %v", track.seekedTo)
	}

	c.Poll(testEpoch.Add(10 * time.Second))
	if c.Elapsed() != 100*time.Second {
		t.Errorf("Expected polling to resume at 100s, got %v", c.Elapsed())
	}

	c.BeginSeek()
	if err := c.EndSeek(150); err != nil {
		t.Fatal(err)
	}
	if track.seekedTo != 200*time.Second {
		t.Errorf("Expected clamped seek to 200s, got %v", track.seekedTo)
	}
}

func TestMusicSeekError(t *testing.T) {
	backend := &fakeBackend{}
	c := newTestMusic(backend)
	if err := c.Open([]string{"a.mp3"}); err != nil {
		t.Fatal(err)
	}
	seekErr := errors.New("not seekable")
	backend.last().seekErr = seekErr

	c.BeginSeek()
	if err := c.EndSeek(10); !errors.Is(err, seekErr) {
		t.Errorf("Expected seek error, got %v", err)
	}
	if c.Dragging() {
		t.Error("Expected dragging to end after a failed seek")
	}
}

func TestMusicLoadFailure(t *testing.T) {
	loadErr := errors.New("bad file")
	backend := &fakeBackend{fail: map[string]error{"bad.mp3": loadErr}}
	c := newTestMusic(backend)

	if err := c.Open([]string{"bad.mp3"}); !errors.Is(err, loadErr) {
		t.Errorf("Expected load error, got %v", err)
	}
	if err := c.Play(); !errors.Is(err, loadErr) {
		t.Errorf("Expected load error from Play, got %v", err)
	}
	if c.State() != StateStopped {
		t.Errorf("Expected stopped, got %v", c.State())
	}
}

func TestMusicClose(t *testing.T) {
	backend := &fakeBackend{}
	c := newTestMusic(backend)
	if err := c.Open([]string{"a.mp3"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	c.Close()

	if !backend.last().closed {
		t.Error("Expected the track to be closed")
	}
	if c.PollingActive() {
		t.Error("Expected polling cancelled on close")
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{59 * time.Second, "0:59"},
		{61*time.Second + 900*time.Millisecond, "1:01"},
		{65 * time.Minute, "65:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.in); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMusicCancelSeek(t *testing.T) {
	backend := &fakeBackend{length: 100 * time.Second}
	c := newTestMusic(backend)
	if err := c.Open([]string{"a.mp3"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	track := backend.last()
	track.pos = 40 * time.Second

	c.BeginSeek()
	c.PreviewSeek(90)
	c.CancelSeek()
	if c.Dragging() {
		t.Fatal("Expected the drag to end")
	}
	if err := c.EndSeek(0); err != nil {
		t.Fatal(err)
	}
	if track.pos != 40*time.Second || track.seekedTo != 0 {
		t.Errorf("cancelled drag should not seek, position %v", track.pos)
	}

	c.Poll(testEpoch.Add(time.Second))
	if c.Elapsed() != 40*time.Second {
		t.Errorf("Expected polling to resume after the drag, elapsed %v", c.Elapsed())
	}
}
