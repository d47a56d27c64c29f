package main

import (
	"fmt"
	"image"
	"math"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	xdraw "golang.org/x/image/draw"
)

// DocumentKind tags the active Document variant.
type DocumentKind int

const (
	KindPDF DocumentKind = iota
	KindArchive
)

func (k DocumentKind) String() string {
	switch k {
	case KindPDF:
		return "PDF"
	case KindArchive:
		return "Comic"
	default:
		return "Unknown"
	}
}

// Document is either a *PDFDocument or an *ImageSequence. The unexported
// marker keeps the set of variants closed.
type Document interface {
	Kind() DocumentKind
	Name() string
	PageCount() int
	// PageSize returns the native page dimensions: points for PDF pages,
	// pixels for archive images.
	PageSize(page int) (width, height float64, err error)
	// Render returns the page scaled by zoom.
	Render(page int, zoom float64) (image.Image, error)
	Close() error

	isDocument()
}

// identityZoomTolerance absorbs rounding from repeated ZoomIn/ZoomOut.
const identityZoomTolerance = 1e-9

// checkRenderBudget refuses bitmaps whose pixel count would exceed maxPixels.
func checkRenderBudget(width, height, zoom float64, maxPixels int) error {
	if maxPixels <= 0 {
		return nil
	}
	pixels := math.Ceil(width*zoom) * math.Ceil(height*zoom)
	if pixels > float64(maxPixels) {
		return fmt.Errorf("%w: %.0fx%.0f at %.0f%%", ErrPageTooLarge, width*zoom, height*zoom, zoom*100)
	}
	return nil
}

func checkPage(page, count int) error {
	if page < 0 || page >= count {
		return fmt.Errorf("%w: %d", ErrInvalidPage, page+1)
	}
	return nil
}

// PDFDocument renders PDF pages through MuPDF.
type PDFDocument struct {
	path      string
	doc       *fitz.Document
	pages     int
	maxPixels int
}

// OpenPDF opens the PDF at path. The returned document must be closed.
func OpenPDF(path string, maxPixels int) (*PDFDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open PDF document: %w", err)
	}

	pages := doc.NumPage()
	if pages <= 0 {
		doc.Close()
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, filepath.Base(path))
	}

	debugLog("Opened PDF %s (%d pages)", path, pages)
	return &PDFDocument{
		path:      path,
		doc:       doc,
		pages:     pages,
		maxPixels: maxPixels,
	}, nil
}

func (d *PDFDocument) isDocument() {}

func (d *PDFDocument) Kind() DocumentKind { return KindPDF }

func (d *PDFDocument) Name() string { return filepath.Base(d.path) }

func (d *PDFDocument) PageCount() int { return d.pages }

// PageSize returns the page box in whole points. go-fitz truncates the
// fractional box (595.28 for A4 becomes 595), so fit zooms derived from it
// are exact to within one point.
func (d *PDFDocument) PageSize(page int) (float64, float64, error) {
	if err := checkPage(page, d.pages); err != nil {
		return 0, 0, err
	}
	bound, err := d.doc.Bound(page)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to read page %d bounds: %w", page+1, err)
	}
	return float64(bound.Dx()), float64(bound.Dy()), nil
}

// Render rasterizes the page at 72*zoom DPI and flattens it onto white, so
// the result carries no alpha.
func (d *PDFDocument) Render(page int, zoom float64) (image.Image, error) {
	w, h, err := d.PageSize(page)
	if err != nil {
		return nil, err
	}
	if err := checkRenderBudget(w, h, zoom, d.maxPixels); err != nil {
		return nil, err
	}

	img, err := d.doc.ImageDPI(page, 72*zoom)
	if err != nil {
		return nil, fmt.Errorf("unable to render page %d: %w", page+1, err)
	}
	return flattenOpaque(img), nil
}

func (d *PDFDocument) Close() error {
	return d.doc.Close()
}

// flattenOpaque composites src over a white background.
func flattenOpaque(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), image.White, image.Point{}, xdraw.Src)
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Over)
	return dst
}

// ImageSequence holds the decoded pages of a comic archive.
type ImageSequence struct {
	path      string
	entries   []string
	images    []image.Image
	maxPixels int
}

func (s *ImageSequence) isDocument() {}

func (s *ImageSequence) Kind() DocumentKind { return KindArchive }

func (s *ImageSequence) Name() string { return filepath.Base(s.path) }

func (s *ImageSequence) PageCount() int { return len(s.images) }

// Entries returns the archive entry names in page order.
func (s *ImageSequence) Entries() []string { return s.entries }

func (s *ImageSequence) PageSize(page int) (float64, float64, error) {
	if err := checkPage(page, len(s.images)); err != nil {
		return 0, 0, err
	}
	b := s.images[page].Bounds()
	return float64(b.Dx()), float64(b.Dy()), nil
}

// Render resamples the page image by zoom. A zoom within
// identityZoomTolerance of 1 returns the decoded image.
func (s *ImageSequence) Render(page int, zoom float64) (image.Image, error) {
	w, h, err := s.PageSize(page)
	if err != nil {
		return nil, err
	}
	src := s.images[page]
	if math.Abs(zoom-1) < identityZoomTolerance {
		return src, nil
	}
	if err := checkRenderBudget(w, h, zoom, s.maxPixels); err != nil {
		return nil, err
	}

	dw := max(int(w*zoom), 1)
	dh := max(int(h*zoom), 1)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

func (s *ImageSequence) Close() error {
	s.images = nil
	return nil
}
