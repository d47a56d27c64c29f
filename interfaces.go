package main

import (
	"time"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// RenderState provides read-only access to viewer state for the renderer
type RenderState interface {
	// Layout and page
	GetLayout() ShellLayout
	GetPageView() *PageView
	HasDocument() bool
	IsQuietMode() bool

	// UI state
	IsShowingHelp() bool
	IsInPageInputMode() bool
	GetPageInputBuffer() string
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetDocumentName() string
	GetCurrentPageNumber() int
	GetTotalPagesCount() int
	GetZoomLevel() float64
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string

	// Music panel
	GetTrackName() string
	GetElapsedLabel() string
	GetMusicProgress() float64
	GetMusicState() PlayerState
}

// RenderStateSnapshot captures the state that changes without input, so a
// frame with no input and an equal snapshot can skip drawing.
type RenderStateSnapshot struct {
	// Overlay message state (auto-expires after overlayMessageDuration)
	OverlayMessage     string
	OverlayMessageTime time.Time

	// Window dimensions for resize detection
	WindowWidth  int
	WindowHeight int

	// Music panel, refreshed by the progress timer
	TrackName    string
	ElapsedLabel string
	Progress     float64
	MusicState   PlayerState
}

// NewRenderStateSnapshot creates a lightweight snapshot of non-input state
func NewRenderStateSnapshot(state RenderState, windowWidth, windowHeight int) *RenderStateSnapshot {
	return &RenderStateSnapshot{
		OverlayMessage:     state.GetOverlayMessage(),
		OverlayMessageTime: state.GetOverlayMessageTime(),
		WindowWidth:        windowWidth,
		WindowHeight:       windowHeight,
		TrackName:          state.GetTrackName(),
		ElapsedLabel:       state.GetElapsedLabel(),
		Progress:           state.GetMusicProgress(),
		MusicState:         state.GetMusicState(),
	}
}

// Equals checks if two snapshots are equal
func (s *RenderStateSnapshot) Equals(other *RenderStateSnapshot) bool {
	if other == nil {
		return false
	}

	isOverlayActive := func(message string, messageTime time.Time) bool {
		return message != "" && time.Since(messageTime) < overlayMessageDuration
	}

	// Compare overlay states semantically rather than exact time values
	overlayEqual := func() bool {
		sActive := isOverlayActive(s.OverlayMessage, s.OverlayMessageTime)
		otherActive := isOverlayActive(other.OverlayMessage, other.OverlayMessageTime)

		// Both inactive: still detect the active to inactive transition
		if !sActive && !otherActive {
			return s.OverlayMessage == other.OverlayMessage
		}
		if sActive && otherActive {
			return s.OverlayMessage == other.OverlayMessage &&
				s.OverlayMessageTime.Equal(other.OverlayMessageTime)
		}
		return false
	}

	return overlayEqual() &&
		s.WindowWidth == other.WindowWidth &&
		s.WindowHeight == other.WindowHeight &&
		s.TrackName == other.TrackName &&
		s.ElapsedLabel == other.ElapsedLabel &&
		s.Progress == other.Progress &&
		s.MusicState == other.MusicState
}

// InputActions provides the operations the input handler can trigger
// outside the action table.
type InputActions interface {
	// Page input
	ExitPageInputMode()
	ProcessPageInput()
	UpdatePageInputBuffer(buffer string)

	// Dispatch by action name
	ExecuteAction(action string) bool

	// Progress slider drag
	BeginSeek()
	PreviewSeek(percent float64)
	EndSeek(percent float64)
}

// InputState provides read-only access to input-related state
type InputState interface {
	IsInPageInputMode() bool
	GetPageInputBuffer() string
	GetLayout() ShellLayout
	IsSeeking() bool
}
