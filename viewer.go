package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
)

const defaultWindowTitle = "PDF Viewer with Music Player"

// Window is the part of the host window the viewer controls.
type Window interface {
	SetTitle(title string)
	IsFullscreen() bool
	SetFullscreen(fullscreen bool)
	Size() (int, int)
	SetSize(width, height int)
	ClosingRequested() bool
}

type ebitenWindow struct{}

func (ebitenWindow) SetTitle(title string)         { ebiten.SetWindowTitle(title) }
func (ebitenWindow) IsFullscreen() bool            { return ebiten.IsFullscreen() }
func (ebitenWindow) SetFullscreen(fullscreen bool) { ebiten.SetFullscreen(fullscreen) }
func (ebitenWindow) Size() (int, int)              { return ebiten.WindowSize() }
func (ebitenWindow) SetSize(width, height int)     { ebiten.SetWindowSize(width, height) }
func (ebitenWindow) ClosingRequested() bool        { return ebiten.IsWindowBeingClosed() }

// Viewer is the application shell: it owns the navigator, the music
// controller and the action table, and implements ebiten.Game.
type Viewer struct {
	config       Config
	configStatus ConfigLoadResult

	view    *PageView
	nav     *Navigator
	music   *MusicController
	actions *ActionExecutor
	dialogs Dialogs
	window  Window

	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	inputHandler        *InputHandler
	renderer            *Renderer

	openDocument func(path string, sortMethod, maxPixels int) (Document, error)
	measure      func(string) int
	now          func() time.Time

	width, height int
	layout        ShellLayout
	title         string

	quiet      bool
	fullscreen bool
	savedWinW  int
	savedWinH  int

	showHelp        bool
	pageInputMode   bool
	pageInputBuffer string

	overlayMessage     string
	overlayMessageTime time.Time

	exitRequested bool
	closed        bool
	dirty         bool
	lastSnapshot  *RenderStateSnapshot
}

// NewViewer creates the shell for the loaded configuration.
func NewViewer(configStatus ConfigLoadResult, backend AudioBackend, dialogs Dialogs, window Window) *Viewer {
	cfg := configStatus.Config
	v := &Viewer{
		config:       cfg,
		configStatus: configStatus,
		dialogs:      dialogs,
		window:       window,
		openDocument: OpenDocument,
		measure:      newLabelMeasure(cfg.FontSize * 0.85),
		now:          time.Now,
		width:        cfg.WindowWidth,
		height:       cfg.WindowHeight,
		fullscreen:   cfg.Fullscreen,
		dirty:        true,
	}

	v.view = NewPageView(0, 0)
	v.nav = NewNavigator(v.view, cfg.CacheSize)
	v.music = NewMusicController(backend, time.Duration(cfg.ProgressInterval)*time.Millisecond)
	v.actions = NewActionExecutor(v.reportError)
	v.registerActions()

	v.keybindingManager = NewKeybindingManager(cfg.Keybindings)
	v.mousebindingManager = NewMousebindingManager(cfg.Mousebindings, cfg.Mouse)
	v.inputHandler = NewInputHandler(v, v, v.keybindingManager, v.mousebindingManager)
	v.renderer = NewRenderer(v)

	v.relayout()
	v.updateTitle()
	return v
}

// registerActions fills the command dispatch table
func (v *Viewer) registerActions() {
	handlers := map[string]ActionHandler{
		actionExit: func() error {
			v.exitRequested = true
			return nil
		},
		actionHelp: func() error {
			v.showHelp = !v.showHelp
			return nil
		},
		actionOpenFile:     v.openFromDialog,
		actionNextPage:     v.nav.Next,
		actionPreviousPage: v.nav.Prev,
		actionPageInput:    v.enterPageInputMode,
		actionJumpFirst:    v.jumpFirst,
		actionJumpLast:     v.jumpLast,
		actionZoomIn:       v.nav.ZoomIn,
		actionZoomOut:      v.nav.ZoomOut,
		actionFitWidth:     v.nav.FitWidth,
		actionFitHeight:    v.nav.FitHeight,
		actionScrollUp: func() error {
			v.view.ScrollBy(0, -v.config.ScrollStep)
			return nil
		},
		actionScrollDown: func() error {
			v.view.ScrollBy(0, v.config.ScrollStep)
			return nil
		},
		actionFullscreen: func() error {
			v.toggleFullscreen()
			return nil
		},
		actionToggleQuiet: func() error {
			v.quiet = !v.quiet
			if v.quiet {
				// The slider is gone; a release must not seek to 0.
				v.music.CancelSeek()
			}
			v.relayout()
			return nil
		},
		actionOpenMusic: v.openMusicFromDialog,
		actionPlayMusic: v.music.Play,
		actionPauseMusic: func() error {
			v.music.Pause()
			return nil
		},
		actionTogglePlay:   v.music.TogglePlay,
		actionNextTrack:    v.music.Next,
		actionShuffleMusic: v.music.Shuffle,
		actionStopMusic: func() error {
			v.music.Stop()
			return nil
		},
	}
	for action, handler := range handlers {
		v.actions.Register(action, handler)
	}
}

// OpenFile loads path as the active document, dispatching on its
// extension. On failure the previous document is closed too.
func (v *Viewer) OpenFile(path string) error {
	doc, err := v.openDocument(path, v.config.SortMethod, v.config.MaxRenderPixels)
	if err != nil {
		v.nav.Close()
		v.updateTitle()
		return fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	if err := v.nav.Open(doc); err != nil {
		v.updateTitle()
		return fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}

	log.Info().Str("path", path).Str("kind", doc.Kind().String()).Int("pages", doc.PageCount()).Msg("opened document")
	v.pageInputMode = false
	v.updateTitle()
	return nil
}

func (v *Viewer) openFromDialog() error {
	path, err := v.dialogs.OpenDocument()
	if err != nil {
		return fmt.Errorf("file dialog: %w", err)
	}
	if path == "" {
		return nil
	}
	return v.OpenFile(path)
}

func (v *Viewer) openMusicFromDialog() error {
	paths, err := v.dialogs.OpenMusic()
	if err != nil {
		return fmt.Errorf("file dialog: %w", err)
	}
	var audio []string
	for _, p := range paths {
		if isAudioExt(p) {
			audio = append(audio, p)
		} else {
			log.Warn().Str("path", p).Msg("skipping unsupported audio file")
		}
	}
	if len(paths) > 0 && len(audio) == 0 {
		return fmt.Errorf("%w: no playable audio selected", ErrUnsupportedFile)
	}
	return v.music.Open(audio)
}

func (v *Viewer) jumpFirst() error {
	if v.nav.Document() == nil {
		return nil
	}
	return v.nav.Jump(1)
}

func (v *Viewer) jumpLast() error {
	if v.nav.Document() == nil {
		return nil
	}
	return v.nav.Jump(v.nav.PageCount())
}

func (v *Viewer) enterPageInputMode() error {
	if v.nav.Document() == nil {
		return ErrNoDocument
	}
	v.pageInputMode = true
	v.pageInputBuffer = ""
	return nil
}

// reportError shows a handler error once in a modal dialog
func (v *Viewer) reportError(err error) {
	title := "Error"
	switch {
	case errors.Is(err, ErrInvalidPage):
		title = "Invalid page"
	case errors.Is(err, ErrPageTooLarge):
		title = "Render error"
	case errors.Is(err, ErrEmptyPlaylist):
		v.ShowOverlayMessage("No music loaded")
		return
	}
	v.dialogs.Error(title, err.Error())
}

// ShowOverlayMessage shows a transient message over the page
func (v *Viewer) ShowOverlayMessage(message string) {
	v.overlayMessage = message
	v.overlayMessageTime = v.now()
}

func (v *Viewer) toggleFullscreen() {
	if !v.fullscreen {
		v.savedWinW, v.savedWinH = v.window.Size()
		v.window.SetFullscreen(true)
		v.fullscreen = true
		return
	}
	v.window.SetFullscreen(false)
	v.fullscreen = false
	if v.savedWinW > 0 && v.savedWinH > 0 {
		v.window.SetSize(v.savedWinW, v.savedWinH)
	}
}

// windowTitle formats the title for the active document
func windowTitle(doc Document, state ViewState) string {
	if doc == nil {
		return defaultWindowTitle
	}
	prefix := "PDF Viewer"
	if doc.Kind() == KindArchive {
		prefix = "Comic Viewer"
	}
	return fmt.Sprintf("%s - Page %d/%d", prefix, state.Page+1, doc.PageCount())
}

func (v *Viewer) updateTitle() {
	title := windowTitle(v.nav.Document(), v.nav.State())
	if title == v.title {
		return
	}
	v.title = title
	v.window.SetTitle(title)
}

func (v *Viewer) relayout() {
	v.layout = computeLayout(v.width, v.height, v.quiet, v.measure)
	v.view.SetViewport(v.layout.Viewport.Dx(), v.layout.Viewport.Dy())
	v.dirty = true
}

// Close stops playback and releases the document. It is safe to call twice.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.music.Close()
	v.nav.Close()
	debugLog("viewer closed")
}

// Update implements ebiten.Game
func (v *Viewer) Update() error {
	if v.window.ClosingRequested() {
		v.exitRequested = true
	}
	if !v.exitRequested {
		v.music.Poll(v.now())
		if v.inputHandler.HandleInput() {
			v.dirty = true
		}
	}
	if v.exitRequested {
		v.Close()
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game. The screen is kept between frames, so a
// frame without changes is skipped.
func (v *Viewer) Draw(screen *ebiten.Image) {
	snapshot := NewRenderStateSnapshot(v, v.width, v.height)
	if !v.dirty && snapshot.Equals(v.lastSnapshot) {
		return
	}
	v.renderer.Draw(screen)
	v.lastSnapshot = snapshot
	v.dirty = false
}

// Layout implements ebiten.Game
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.width || outsideHeight != v.height {
		v.width, v.height = outsideWidth, outsideHeight
		v.relayout()
	}
	return outsideWidth, outsideHeight
}

// InputActions implementation

func (v *Viewer) ExecuteAction(action string) bool {
	handled := v.actions.ExecuteAction(action)
	v.updateTitle()
	v.dirty = true
	return handled
}

func (v *Viewer) ExitPageInputMode() {
	v.pageInputMode = false
	v.pageInputBuffer = ""
}

func (v *Viewer) ProcessPageInput() {
	if err := v.nav.JumpInput(v.pageInputBuffer); err != nil {
		log.Warn().Err(err).Str("input", v.pageInputBuffer).Msg("page jump failed")
		v.reportError(err)
	}
	v.updateTitle()
}

func (v *Viewer) UpdatePageInputBuffer(buffer string) {
	v.pageInputBuffer = buffer
	v.dirty = true
}

func (v *Viewer) BeginSeek()                  { v.music.BeginSeek() }
func (v *Viewer) PreviewSeek(percent float64) { v.music.PreviewSeek(percent) }

func (v *Viewer) EndSeek(percent float64) {
	if err := v.music.EndSeek(percent); err != nil {
		v.reportError(err)
	}
}

// InputState and RenderState implementation

func (v *Viewer) IsInPageInputMode() bool               { return v.pageInputMode }
func (v *Viewer) GetPageInputBuffer() string            { return v.pageInputBuffer }
func (v *Viewer) GetLayout() ShellLayout                { return v.layout }
func (v *Viewer) IsSeeking() bool                       { return v.music.Dragging() }
func (v *Viewer) GetPageView() *PageView                { return v.view }
func (v *Viewer) HasDocument() bool                     { return v.nav.Document() != nil }
func (v *Viewer) IsQuietMode() bool                     { return v.quiet }
func (v *Viewer) IsFullscreen() bool                    { return v.fullscreen }
func (v *Viewer) IsShowingHelp() bool                   { return v.showHelp }
func (v *Viewer) GetOverlayMessage() string             { return v.overlayMessage }
func (v *Viewer) GetOverlayMessageTime() time.Time      { return v.overlayMessageTime }
func (v *Viewer) GetTotalPagesCount() int               { return v.nav.PageCount() }
func (v *Viewer) GetZoomLevel() float64                 { return v.nav.State().Zoom }
func (v *Viewer) GetFontSize() float64                  { return v.config.FontSize }
func (v *Viewer) GetConfigStatus() ConfigLoadResult     { return v.configStatus }
func (v *Viewer) GetKeybindings() map[string][]string   { return v.keybindingManager.GetKeybindings() }
func (v *Viewer) GetMousebindings() map[string][]string { return v.mousebindingManager.GetMousebindings() }
func (v *Viewer) GetTrackName() string                  { return v.music.TrackName() }
func (v *Viewer) GetElapsedLabel() string               { return v.music.ElapsedLabel() }
func (v *Viewer) GetMusicProgress() float64             { return v.music.Progress() }
func (v *Viewer) GetMusicState() PlayerState            { return v.music.State() }

func (v *Viewer) GetDocumentName() string {
	if doc := v.nav.Document(); doc != nil {
		return doc.Name()
	}
	return ""
}

func (v *Viewer) GetCurrentPageNumber() int {
	if v.nav.Document() == nil {
		return 0
	}
	return v.nav.State().Page + 1
}
