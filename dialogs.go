package main

import (
	"errors"

	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"
)

// Dialogs are the modal windows the shell opens. A cancelled selection
// returns an empty result and a nil error.
type Dialogs interface {
	OpenDocument() (string, error)
	OpenMusic() ([]string, error)
	Error(title, message string)
}

// zenityDialogs shows native dialogs.
type zenityDialogs struct{}

var documentFilters = zenity.FileFilters{
	{Name: "PDF and comic archives", Patterns: []string{"*.pdf", "*.cbz", "*.zip", "*.cbr", "*.rar", "*.cb7", "*.7z"}, CaseFold: true},
	{Name: "PDF files", Patterns: []string{"*.pdf"}, CaseFold: true},
	{Name: "Comic archives", Patterns: []string{"*.cbz", "*.zip", "*.cbr", "*.rar", "*.cb7", "*.7z"}, CaseFold: true},
}

var musicFilters = zenity.FileFilters{
	{Name: "Audio files", Patterns: []string{"*.mp3", "*.wav", "*.ogg"}, CaseFold: true},
}

func (zenityDialogs) OpenDocument() (string, error) {
	path, err := zenity.SelectFile(zenity.Title("Open PDF or comic"), documentFilters)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}

func (zenityDialogs) OpenMusic() ([]string, error) {
	paths, err := zenity.SelectFileMultiple(zenity.Title("Open music"), musicFilters)
	if errors.Is(err, zenity.ErrCanceled) {
		return nil, nil
	}
	return paths, err
}

func (zenityDialogs) Error(title, message string) {
	if err := zenity.Error(message, zenity.Title(title), zenity.ErrorIcon); err != nil {
		log.Warn().Err(err).Str("message", message).Msg("unable to show error dialog")
	}
}
