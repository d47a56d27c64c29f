package main

import (
	"errors"
	"testing"
	"time"
)

func TestBytesToDuration(t *testing.T) {
	tests := []struct {
		bytes int64
		want  time.Duration
	}{
		{0, 0},
		{-4, 0},
		{audioSampleRate * audioBytesPerFrame, time.Second},
		{audioSampleRate * audioBytesPerFrame * 90, 90 * time.Second},
		{audioSampleRate * audioBytesPerFrame / 2, 500 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := bytesToDuration(tt.bytes); got != tt.want {
			t.Errorf("bytesToDuration(%d) = %v, want %v", tt.bytes, got, tt.want)
		}
	}
}

func TestDecodeAudioErrors(t *testing.T) {
	if _, _, err := decodeAudio("song.flac", []byte("fLaC")); !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("Expected ErrUnsupportedFile, got %v", err)
	}
	if _, _, err := decodeAudio("song.wav", []byte("not a wave file")); err == nil {
		t.Error("Expected a decode error for garbage wav data")
	}
}

func TestTrackTitleFallback(t *testing.T) {
	if got := trackTitle("/music/01 intro.mp3", []byte("no tags here")); got != "01 intro.mp3" {
		t.Errorf("Expected file name fallback, got %q", got)
	}
}
