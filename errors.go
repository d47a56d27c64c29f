package main

import "errors"

var (
	ErrNoDocument      = errors.New("no document loaded")
	ErrInvalidPage     = errors.New("invalid page number")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrEmptyArchive    = errors.New("archive contains no images")
	ErrEmptyDocument   = errors.New("document has no pages")
	ErrPageTooLarge    = errors.New("page too large to render at this zoom")
	ErrEmptyPlaylist   = errors.New("no music loaded")
)
