package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// zoomStep is the factor applied by ZoomIn and ZoomOut.
const zoomStep = 1.2

// ViewState is the page index and zoom level of the active document.
type ViewState struct {
	Page int
	Zoom float64
}

func initialViewState() ViewState {
	return ViewState{Page: 0, Zoom: 1.0}
}

type renderKey struct {
	page int
	zoom float64
}

// Navigator owns the active Document and its ViewState. Every change of
// page or zoom re-renders into the PageView and scrolls back to the top.
type Navigator struct {
	doc   Document
	state ViewState
	view  *PageView
	cache *lru.Cache[renderKey, image.Image]
}

// NewNavigator creates a Navigator drawing into view, caching up to
// cacheSize rendered bitmaps.
func NewNavigator(view *PageView, cacheSize int) *Navigator {
	cache, err := lru.New[renderKey, image.Image](cacheSize)
	if err != nil {
		log.Error().Err(err).Int("size", cacheSize).Msg("failed to create render cache")
		cache, _ = lru.New[renderKey, image.Image](defaultCacheSize)
	}
	return &Navigator{
		state: initialViewState(),
		view:  view,
		cache: cache,
	}
}

// Document returns the active document, or nil.
func (n *Navigator) Document() Document {
	return n.doc
}

// State returns the current view state.
func (n *Navigator) State() ViewState {
	return n.state
}

// PageCount returns the number of pages of the active document.
func (n *Navigator) PageCount() int {
	if n.doc == nil {
		return 0
	}
	return n.doc.PageCount()
}

// Open replaces the active document, resets the view state and renders the
// first page. If the first page cannot be rendered the document is closed.
func (n *Navigator) Open(doc Document) error {
	n.Close()
	n.doc = doc
	if err := n.render(initialViewState()); err != nil {
		n.Close()
		return err
	}
	return nil
}

// Close releases the active document and clears the view.
func (n *Navigator) Close() {
	if n.doc != nil {
		if err := n.doc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close document")
		}
	}
	n.doc = nil
	n.state = initialViewState()
	n.cache.Purge()
	n.view.Clear()
}

// Next advances one page. It is a no-op on the last page.
func (n *Navigator) Next() error {
	if n.doc == nil || n.state.Page >= n.doc.PageCount()-1 {
		return nil
	}
	return n.render(ViewState{Page: n.state.Page + 1, Zoom: n.state.Zoom})
}

// Prev goes back one page. It is a no-op on the first page.
func (n *Navigator) Prev() error {
	if n.doc == nil || n.state.Page <= 0 {
		return nil
	}
	return n.render(ViewState{Page: n.state.Page - 1, Zoom: n.state.Zoom})
}

// Jump shows the 1-based page number.
func (n *Navigator) Jump(pageNumber int) error {
	if n.doc == nil {
		return ErrNoDocument
	}
	page := pageNumber - 1
	if page < 0 || page >= n.doc.PageCount() {
		return fmt.Errorf("%w: %d (1-%d)", ErrInvalidPage, pageNumber, n.doc.PageCount())
	}
	return n.render(ViewState{Page: page, Zoom: n.state.Zoom})
}

// JumpInput parses typed page input and jumps to it.
func (n *Navigator) JumpInput(input string) error {
	pageNumber, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPage, input)
	}
	return n.Jump(pageNumber)
}

// ZoomIn multiplies the zoom level by zoomStep.
func (n *Navigator) ZoomIn() error {
	return n.setZoom(n.state.Zoom * zoomStep)
}

// ZoomOut divides the zoom level by zoomStep.
func (n *Navigator) ZoomOut() error {
	return n.setZoom(n.state.Zoom / zoomStep)
}

// FitWidth sets the zoom so the page width matches the viewport width.
func (n *Navigator) FitWidth() error {
	return n.fit(func(vw, _ int, pw, _ float64) float64 { return float64(vw) / pw })
}

// FitHeight sets the zoom so the page height matches the viewport height.
func (n *Navigator) FitHeight() error {
	return n.fit(func(_, vh int, _, ph float64) float64 { return float64(vh) / ph })
}

func (n *Navigator) fit(zoomFor func(vw, vh int, pw, ph float64) float64) error {
	if n.doc == nil {
		return nil
	}
	pw, ph, err := n.doc.PageSize(n.state.Page)
	if err != nil {
		return err
	}
	if pw <= 0 || ph <= 0 {
		return fmt.Errorf("page %d has no size", n.state.Page+1)
	}
	vw, vh := n.view.ViewportSize()
	if vw <= 0 || vh <= 0 {
		return nil
	}
	return n.setZoom(zoomFor(vw, vh, pw, ph))
}

func (n *Navigator) setZoom(zoom float64) error {
	if n.doc == nil {
		return nil
	}
	return n.render(ViewState{Page: n.state.Page, Zoom: zoom})
}

// render shows the page described by next. On failure the previous state
// and bitmap are kept.
func (n *Navigator) render(next ViewState) error {
	key := renderKey{page: next.Page, zoom: next.Zoom}
	img, ok := n.cache.Get(key)
	if !ok {
		var err error
		img, err = n.doc.Render(next.Page, next.Zoom)
		if err != nil {
			return fmt.Errorf("failed to render page %d: %w", next.Page+1, err)
		}
		n.cache.Add(key, img)
	}

	n.state = next
	n.view.Show(img)
	n.view.ScrollToTop()
	debugLog("Showing page %d/%d at %.0f%%", next.Page+1, n.doc.PageCount(), next.Zoom*100)
	return nil
}
