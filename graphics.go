package main

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Global font source shared by the shell widgets and overlays
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// newFace returns a face of the given size, or nil before InitGraphics.
func newFace(size float64) *text.GoTextFace {
	if globalFontSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: globalFontSource, Size: size}
}

// newLabelMeasure returns a label width function for the layout. Without a
// font source it estimates from the rune count.
func newLabelMeasure(size float64) func(string) int {
	face := newFace(size)
	if face == nil {
		return func(s string) int {
			return int(math.Ceil(float64(utf8.RuneCountInString(s)) * size * 0.6))
		}
	}
	return func(s string) int {
		return int(math.Ceil(text.Advance(s, face)))
	}
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	if font == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawTextCentered draws text centered inside rect
func DrawTextCentered(screen *ebiten.Image, textString string, font *text.GoTextFace, rect image.Rectangle, textColor color.RGBA) {
	if font == nil {
		return
	}
	w, h := text.Measure(textString, font, 0)
	x := float64(rect.Min.X) + (float64(rect.Dx())-w)/2
	y := float64(rect.Min.Y) + (float64(rect.Dy())-h)/2
	DrawText(screen, textString, font, x, y, textColor)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// FillRect fills an integer rectangle
func FillRect(screen *ebiten.Image, r image.Rectangle, c color.RGBA) {
	DrawFilledRect(screen, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), c)
}

// DrawButton draws a raised button with a centered label
func DrawButton(screen *ebiten.Image, b Button, font *text.GoTextFace, pressed bool) {
	bg := colorButton
	if pressed {
		bg = colorButtonActive
	}
	FillRect(screen, b.Rect, bg)
	vector.StrokeRect(screen, float32(b.Rect.Min.X), float32(b.Rect.Min.Y), float32(b.Rect.Dx()), float32(b.Rect.Dy()), 1, colorButtonBorder, false)
	DrawTextCentered(screen, b.Label, font, b.Rect, colorWhite)
}

// DrawSlider draws the progress track, its filled part and the knob
func DrawSlider(screen *ebiten.Image, s Slider, percent float64) {
	if s.Rect.Empty() {
		return
	}
	FillRect(screen, s.Rect, colorSliderTrack)
	filled := s.Rect
	filled.Max.X = s.KnobX(percent)
	FillRect(screen, filled, colorSliderFill)

	cy := float32(s.Rect.Min.Y+s.Rect.Max.Y) / 2
	vector.DrawFilledCircle(screen, float32(s.KnobX(percent)), cy, sliderKnobRadius, colorWhite, true)
}
