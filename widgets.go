package main

import (
	"image"
)

const (
	toolbarHeight    = 36
	musicPanelHeight = 40
	widgetMargin     = 4
	buttonPadding    = 12
	trackLabelWidth  = 240
	sliderKnobRadius = 6
)

// Button is a clickable label bound to an action name.
type Button struct {
	Action string
	Label  string
	Rect   image.Rectangle
}

// Contains reports whether the point is inside the button.
func (b Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Slider is the horizontal playback progress bar.
type Slider struct {
	Rect image.Rectangle
}

// Contains reports whether the point is on the slider, including the
// knob overhang at both ends.
func (s Slider) Contains(x, y int) bool {
	return image.Pt(x, y).In(s.Rect.Inset(-sliderKnobRadius))
}

// PercentAt converts an x coordinate into a position in [0, 100].
func (s Slider) PercentAt(x int) float64 {
	w := s.Rect.Dx()
	if w <= 0 {
		return 0
	}
	return clampPercent(float64(x-s.Rect.Min.X) / float64(w) * 100)
}

// KnobX is the x coordinate of the knob at percent.
func (s Slider) KnobX(percent float64) int {
	return s.Rect.Min.X + int(float64(s.Rect.Dx())*clampPercent(percent)/100)
}

var toolbarButtons = []Button{
	{Action: actionPreviousPage, Label: "◄"},
	{Action: actionOpenFile, Label: "Open PDF/CBZ"},
	{Action: actionNextPage, Label: "►"},
	{Action: actionZoomIn, Label: "Zoom In"},
	{Action: actionZoomOut, Label: "Zoom Out"},
	{Action: actionFitWidth, Label: "Fit Width"},
	{Action: actionFitHeight, Label: "Fit Height"},
	{Action: actionPageInput, Label: "Go To"},
	{Action: actionToggleQuiet, Label: "Quiet Mode"},
}

var musicButtons = []Button{
	{Action: actionOpenMusic, Label: "Open"},
	{Action: actionPlayMusic, Label: "Play"},
	{Action: actionPauseMusic, Label: "Pause"},
	{Action: actionNextTrack, Label: "Next"},
	{Action: actionShuffleMusic, Label: "Shuffle"},
}

// elapsedLabelSample sizes the elapsed label column.
const elapsedLabelSample = "00:00 / 00:00"

// ShellLayout is the window split into toolbar, page viewport and music
// panel. In quiet mode the music panel is empty and the viewport takes
// its space.
type ShellLayout struct {
	Toolbar    image.Rectangle
	Viewport   image.Rectangle
	MusicPanel image.Rectangle
	Buttons    []Button
	TrackLabel image.Rectangle
	Slider     Slider
	Elapsed    image.Rectangle
}

// computeLayout lays out a width x height window. measure returns the
// pixel width of a label.
func computeLayout(width, height int, quiet bool, measure func(string) int) ShellLayout {
	l := ShellLayout{
		Toolbar: image.Rect(0, 0, width, min(toolbarHeight, height)),
	}

	panelTop := height
	if !quiet {
		panelTop = max(height-musicPanelHeight, l.Toolbar.Max.Y)
		l.MusicPanel = image.Rect(0, panelTop, width, height)
	}
	l.Viewport = image.Rect(0, l.Toolbar.Max.Y, width, panelTop)

	x := widgetMargin
	for _, b := range toolbarButtons {
		b.Rect = buttonRect(x, l.Toolbar, measure(b.Label))
		l.Buttons = append(l.Buttons, b)
		x = b.Rect.Max.X + widgetMargin
	}

	if quiet {
		return l
	}

	x = widgetMargin
	for _, b := range musicButtons {
		b.Rect = buttonRect(x, l.MusicPanel, measure(b.Label))
		l.Buttons = append(l.Buttons, b)
		x = b.Rect.Max.X + widgetMargin
	}

	inner := l.MusicPanel.Inset(widgetMargin)
	l.TrackLabel = image.Rect(x, inner.Min.Y, x+trackLabelWidth, inner.Max.Y)

	elapsedW := measure(elapsedLabelSample) + buttonPadding
	l.Elapsed = image.Rect(max(width-widgetMargin-elapsedW, l.TrackLabel.Max.X), inner.Min.Y, width-widgetMargin, inner.Max.Y)

	midY := (inner.Min.Y + inner.Max.Y) / 2
	sliderLeft := l.TrackLabel.Max.X + widgetMargin + sliderKnobRadius
	sliderRight := max(l.Elapsed.Min.X-widgetMargin-sliderKnobRadius, sliderLeft)
	l.Slider = Slider{Rect: image.Rect(sliderLeft, midY-2, sliderRight, midY+2)}
	return l
}

func buttonRect(x int, row image.Rectangle, labelWidth int) image.Rectangle {
	inner := row.Inset(widgetMargin)
	return image.Rect(x, inner.Min.Y, x+labelWidth+2*buttonPadding, inner.Max.Y)
}

// ButtonAt returns the button under the point.
func (l ShellLayout) ButtonAt(x, y int) (Button, bool) {
	for _, b := range l.Buttons {
		if b.Contains(x, y) {
			return b, true
		}
	}
	return Button{}, false
}
