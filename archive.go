package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
)

// File type predicates

func isPDFExt(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".pdf"
}

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cbz", ".zip", ".cbr", ".rar", ".cb7", ".7z":
		return true
	default:
		return false
	}
}

// isImageEntry reports whether an archive entry name is a page image.
func isImageEntry(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".png") ||
		strings.HasSuffix(lower, ".jpg") ||
		strings.HasSuffix(lower, ".jpeg")
}

// archiveEntries maps entry names to a function returning their bytes.
type archiveEntries struct {
	names []string
	open  func(name string) ([]byte, error)
	close func() error
}

// LoadArchive reads every page image of a comic archive into memory.
// Any listing or decode error aborts the load; no partial sequence is returned.
func LoadArchive(archivePath string, sortMethod int, maxPixels int) (*ImageSequence, error) {
	entries, err := listArchive(archivePath)
	if err != nil {
		return nil, fmt.Errorf("unable to read archive %s: %w", filepath.Base(archivePath), err)
	}
	defer entries.close()

	if len(entries.names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyArchive, filepath.Base(archivePath))
	}

	names := GetSortStrategy(sortMethod).Sort(entries.names)
	images := make([]image.Image, 0, len(names))
	for _, name := range names {
		data, err := entries.open(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		img, err := decodeImage(data, name)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	debugLog("Loaded archive %s (%d images, %s order)", archivePath, len(images), getSortMethodName(sortMethod))
	return &ImageSequence{
		path:      archivePath,
		entries:   names,
		images:    images,
		maxPixels: maxPixels,
	}, nil
}

func decodeImage(data []byte, name string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

func listArchive(archivePath string) (*archiveEntries, error) {
	ext := strings.ToLower(filepath.Ext(archivePath))
	switch ext {
	case ".cbz", ".zip":
		return listZip(archivePath)
	case ".cbr", ".rar":
		return listRar(archivePath)
	case ".cb7", ".7z":
		return list7z(archivePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, ext)
	}
}

func listZip(archivePath string) (*archiveEntries, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}

	files := make(map[string]*zip.File)
	var names []string
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isImageEntry(f.Name) {
			files[f.Name] = f
			names = append(names, f.Name)
		}
	}

	return &archiveEntries{
		names: names,
		open: func(name string) ([]byte, error) {
			f, ok := files[name]
			if !ok {
				return nil, fmt.Errorf("entry %s not found in %s", name, archivePath)
			}
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		},
		close: r.Close,
	}, nil
}

// listRar buffers matching entries while scanning, since RAR is read sequentially.
func listRar(archivePath string) (*archiveEntries, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	data := make(map[string][]byte)
	var names []string
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.IsDir || !isImageEntry(header.Name) {
			continue
		}
		buf, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", header.Name, err)
		}
		data[header.Name] = buf
		names = append(names, header.Name)
	}

	return &archiveEntries{
		names: names,
		open: func(name string) ([]byte, error) {
			buf, ok := data[name]
			if !ok {
				return nil, fmt.Errorf("entry %s not found in %s", name, archivePath)
			}
			return buf, nil
		},
		close: func() error { return nil },
	}, nil
}

func list7z(archivePath string) (*archiveEntries, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}

	files := make(map[string]*sevenzip.File)
	var names []string
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isImageEntry(f.Name) {
			files[f.Name] = f
			names = append(names, f.Name)
		}
	}

	return &archiveEntries{
		names: names,
		open: func(name string) ([]byte, error) {
			f, ok := files[name]
			if !ok {
				return nil, fmt.Errorf("entry %s not found in %s", name, archivePath)
			}
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		},
		close: r.Close,
	}, nil
}

// OpenDocument dispatches a path to the PDF or archive loader by extension.
func OpenDocument(path string, sortMethod int, maxPixels int) (Document, error) {
	switch {
	case isPDFExt(path):
		doc, err := OpenPDF(path, maxPixels)
		if err != nil {
			return nil, err
		}
		return doc, nil
	case isArchiveExt(path):
		seq, err := LoadArchive(path, sortMethod, maxPixels)
		if err != nil {
			return nil, err
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(path))
	}
}
