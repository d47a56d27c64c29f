package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// CenterOffset returns the offset that centers size within viewport, or 0
// when the content is larger than the viewport.
func CenterOffset(viewport, size int) int {
	return max((viewport-size)/2, 0)
}

// PageView places the current page bitmap inside the viewport and tracks
// the scroll position over its bounding box.
type PageView struct {
	viewportW, viewportH int

	img     image.Image
	offset  image.Point
	region  image.Rectangle
	scrollX float64
	scrollY float64

	texture *ebiten.Image // lazily uploaded copy of img
}

// NewPageView creates a PageView for a viewport of the given size.
func NewPageView(width, height int) *PageView {
	return &PageView{viewportW: width, viewportH: height}
}

// Show replaces the displayed bitmap and recomputes its placement.
func (v *PageView) Show(img image.Image) {
	if v.texture != nil {
		v.texture.Deallocate()
		v.texture = nil
	}
	v.img = img
	v.relayout()
}

// Clear removes the displayed bitmap.
func (v *PageView) Clear() {
	v.Show(nil)
}

// Image returns the displayed bitmap, or nil.
func (v *PageView) Image() image.Image {
	return v.img
}

// SetViewport updates the viewport size and recenters the bitmap.
func (v *PageView) SetViewport(width, height int) {
	if width == v.viewportW && height == v.viewportH {
		return
	}
	v.viewportW, v.viewportH = width, height
	v.relayout()
}

// ViewportSize returns the viewport dimensions in pixels.
func (v *PageView) ViewportSize() (int, int) {
	return v.viewportW, v.viewportH
}

// Offset returns where the bitmap's top-left corner sits in the scroll region.
func (v *PageView) Offset() image.Point {
	return v.offset
}

// ScrollRegion returns the bounding box of the placed bitmap.
func (v *PageView) ScrollRegion() image.Rectangle {
	return v.region
}

// Scroll returns the current scroll position.
func (v *PageView) Scroll() (float64, float64) {
	return v.scrollX, v.scrollY
}

func (v *PageView) relayout() {
	if v.img == nil {
		v.offset = image.Point{}
		v.region = image.Rectangle{}
		v.scrollX, v.scrollY = 0, 0
		return
	}
	b := v.img.Bounds()
	v.offset = image.Pt(CenterOffset(v.viewportW, b.Dx()), CenterOffset(v.viewportH, b.Dy()))
	v.region = image.Rect(v.offset.X, v.offset.Y, v.offset.X+b.Dx(), v.offset.Y+b.Dy())
	v.scrollX = clampScroll(v.scrollX, v.region.Max.X, v.viewportW)
	v.scrollY = clampScroll(v.scrollY, v.region.Max.Y, v.viewportH)
}

// clampScroll keeps pos within [0, extent-viewport].
func clampScroll(pos float64, extent, viewport int) float64 {
	limit := float64(max(extent-viewport, 0))
	if pos < 0 {
		return 0
	}
	if pos > limit {
		return limit
	}
	return pos
}

// ScrollBy moves the viewport over the scroll region.
func (v *PageView) ScrollBy(dx, dy float64) {
	v.scrollX = clampScroll(v.scrollX+dx, v.region.Max.X, v.viewportW)
	v.scrollY = clampScroll(v.scrollY+dy, v.region.Max.Y, v.viewportH)
}

// ScrollToTop resets the vertical scroll position.
func (v *PageView) ScrollToTop() {
	v.scrollY = 0
}

// Draw paints the bitmap into screen with the viewport's top-left at origin.
func (v *PageView) Draw(screen *ebiten.Image, origin image.Point) {
	if v.img == nil {
		return
	}
	if v.texture == nil {
		v.texture = ebiten.NewImageFromImage(v.img)
	}

	viewport := image.Rect(origin.X, origin.Y, origin.X+v.viewportW, origin.Y+v.viewportH)
	sub, ok := screen.SubImage(viewport).(*ebiten.Image)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(origin.X+v.offset.X)-v.scrollX, float64(origin.Y+v.offset.Y)-v.scrollY)
	sub.DrawImage(v.texture, op)
}
