package main

import (
	"image"
	"testing"
)

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		viewport, size, want int
	}{
		{800, 400, 200},
		{800, 800, 0},
		{800, 1200, 0},
		{801, 400, 200},
		{0, 10, 0},
	}
	for _, tt := range tests {
		if got := CenterOffset(tt.viewport, tt.size); got != tt.want {
			t.Errorf("CenterOffset(%d, %d) = %d, want %d", tt.viewport, tt.size, got, tt.want)
		}
	}
}

func TestPageViewPlacement(t *testing.T) {
	view := NewPageView(800, 600)
	view.Show(image.NewRGBA(image.Rect(0, 0, 400, 1000)))

	if got := view.Offset(); got != image.Pt(200, 0) {
		t.Errorf("Expected offset (200,0), got %v", got)
	}
	if got := view.ScrollRegion(); got != image.Rect(200, 0, 600, 1000) {
		t.Errorf("unexpected scroll region %v", got)
	}

	view.SetViewport(1000, 1200)
	if got := view.Offset(); got != image.Pt(300, 100) {
		t.Errorf("Expected offset (300,100) after resize, got %v", got)
	}

	view.Clear()
	if view.Image() != nil || !view.ScrollRegion().Empty() {
		t.Error("Expected Clear to empty the view")
	}
}

func TestPageViewScrollClamp(t *testing.T) {
	view := NewPageView(800, 600)
	view.Show(image.NewRGBA(image.Rect(0, 0, 1000, 1500)))

	view.ScrollBy(0, -50)
	if x, y := view.Scroll(); x != 0 || y != 0 {
		t.Errorf("Expected scroll clamped at origin, got (%v,%v)", x, y)
	}

	view.ScrollBy(10000, 10000)
	if x, y := view.Scroll(); x != 200 || y != 900 {
		t.Errorf("Expected scroll clamped at (200,900), got (%v,%v)", x, y)
	}

	view.ScrollToTop()
	if x, y := view.Scroll(); x != 200 || y != 0 {
		t.Errorf("ScrollToTop should only reset y, got (%v,%v)", x, y)
	}

	// A smaller bitmap pulls the scroll position back into range.
	view.ScrollBy(0, 300)
	view.Show(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	if x, y := view.Scroll(); x != 0 || y != 0 {
		t.Errorf("Expected scroll reset for a small bitmap, got (%v,%v)", x, y)
	}
}
