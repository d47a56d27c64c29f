package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorLightGray = color.RGBA{192, 192, 192, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorLightRed  = color.RGBA{255, 150, 150, 255}

	colorBackground   = color.RGBA{46, 46, 46, 255}
	colorPanel        = color.RGBA{62, 62, 62, 255}
	colorButton       = color.RGBA{78, 78, 78, 255}
	colorButtonActive = color.RGBA{40, 110, 170, 255}
	colorButtonBorder = color.RGBA{110, 110, 110, 255}
	colorSliderTrack  = color.RGBA{90, 90, 90, 255}
	colorSliderFill   = color.RGBA{80, 160, 220, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128}
	bgColorMedium = color.RGBA{0, 0, 0, 160}
	bgColorDark   = color.RGBA{0, 0, 0, 200}
)

const (
	helpPadding     = 40.0
	helpMinFontSize = 12.0
	maxHelpWarnings = 2
)

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	return &Renderer{renderState: renderState}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	layout := r.renderState.GetLayout()
	face := newFace(r.renderState.GetFontSize())
	small := newFace(r.renderState.GetFontSize() * 0.85)

	r.drawPage(screen, layout, face)
	r.drawToolbar(screen, layout, small)
	if !r.renderState.IsQuietMode() {
		r.drawMusicPanel(screen, layout, small)
	}

	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}

	if r.renderState.IsInPageInputMode() {
		r.drawPageInputOverlay(screen)
	}

	if r.renderState.GetOverlayMessage() != "" && time.Since(r.renderState.GetOverlayMessageTime()) < overlayMessageDuration {
		r.drawOverlayMessage(screen)
	}
}

func (r *Renderer) drawPage(screen *ebiten.Image, layout ShellLayout, face *text.GoTextFace) {
	if !r.renderState.HasDocument() {
		DrawTextCentered(screen, "Open a PDF or comic archive to start reading", face, layout.Viewport, colorGray)
		return
	}
	r.renderState.GetPageView().Draw(screen, layout.Viewport.Min)
}

func (r *Renderer) drawToolbar(screen *ebiten.Image, layout ShellLayout, face *text.GoTextFace) {
	FillRect(screen, layout.Toolbar, colorPanel)

	var last image.Rectangle
	for _, b := range layout.Buttons {
		if !b.Rect.In(layout.Toolbar) {
			continue
		}
		DrawButton(screen, b, face, b.Action == actionToggleQuiet && r.renderState.IsQuietMode())
		last = b.Rect
	}

	if !r.renderState.HasDocument() || face == nil {
		return
	}
	status := r.buildPageNumberString()
	w, h := text.Measure(status, face, 0)
	x := float64(layout.Toolbar.Max.X) - w - widgetMargin*2
	if x < float64(last.Max.X+widgetMargin) {
		return
	}
	y := float64(layout.Toolbar.Min.Y) + (float64(layout.Toolbar.Dy())-h)/2
	DrawText(screen, status, face, x, y, colorLightGray)
}

func (r *Renderer) drawMusicPanel(screen *ebiten.Image, layout ShellLayout, face *text.GoTextFace) {
	if layout.MusicPanel.Empty() {
		return
	}
	FillRect(screen, layout.MusicPanel, colorPanel)

	state := r.renderState.GetMusicState()
	for _, b := range layout.Buttons {
		if !b.Rect.In(layout.MusicPanel) {
			continue
		}
		active := (b.Action == actionPlayMusic && state == StatePlaying) ||
			(b.Action == actionPauseMusic && state == StatePaused)
		DrawButton(screen, b, face, active)
	}

	if face != nil {
		name := truncateToWidth(r.renderState.GetTrackName(), face, float64(layout.TrackLabel.Dx()))
		_, h := text.Measure(name, face, 0)
		y := float64(layout.TrackLabel.Min.Y) + (float64(layout.TrackLabel.Dy())-h)/2
		DrawText(screen, name, face, float64(layout.TrackLabel.Min.X), y, colorWhite)
	}

	DrawSlider(screen, layout.Slider, r.renderState.GetMusicProgress())
	DrawTextCentered(screen, r.renderState.GetElapsedLabel(), face, layout.Elapsed, colorLightGray)
}

// truncateToWidth shortens s with an ellipsis until it fits maxWidth
func truncateToWidth(s string, face *text.GoTextFace, maxWidth float64) string {
	if w, _ := text.Measure(s, face, 0); w <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if w, _ := text.Measure(candidate, face, 0); w <= maxWidth {
			return candidate
		}
	}
	return ""
}

// helpRow is one line of the controls table
type helpRow struct {
	action      string
	keys        string
	mouse       string
	description string
}

func (row helpRow) input() string {
	switch {
	case row.keys != "" && row.mouse != "":
		return row.keys + " | " + row.mouse
	case row.keys != "":
		return row.keys
	default:
		return row.mouse
	}
}

// helpRows returns the bound actions sorted by name
func (r *Renderer) helpRows() []helpRow {
	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()
	descriptions := GetActionDescriptions()

	actionSet := make(map[string]bool)
	for action := range keybindings {
		actionSet[action] = true
	}
	for action := range mousebindings {
		actionSet[action] = true
	}

	var rows []helpRow
	for action := range actionSet {
		keys, mouse := keybindings[action], mousebindings[action]
		if len(keys) == 0 && len(mouse) == 0 {
			continue
		}
		description := descriptions[action]
		if description == "" {
			description = "No description available"
		}
		rows = append(rows, helpRow{
			action:      action,
			keys:        strings.Join(keys, ", "),
			mouse:       strings.Join(mouse, ", "),
			description: description,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].action < rows[j].action })
	return rows
}

func (r *Renderer) helpWarnings() []string {
	warnings := r.renderState.GetConfigStatus().Warnings
	if len(warnings) > maxHelpWarnings {
		warnings = warnings[:maxHelpWarnings]
	}
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		if len(w) > 50 {
			w = w[:47] + "..."
		}
		out = append(out, "• "+w)
	}
	return out
}

// helpColumns measures the action and input columns
func helpColumns(rows []helpRow, face *text.GoTextFace) (actionW, inputW, descW float64) {
	for _, row := range rows {
		if w, _ := text.Measure(row.action, face, 0); w > actionW {
			actionW = w
		}
		if w, _ := text.Measure(row.input(), face, 0); w > inputW {
			inputW = w
		}
		if w, _ := text.Measure(row.description, face, 0); w > descW {
			descW = w
		}
	}
	return actionW, inputW, descW
}

// helpStatusLine is the config status line of the help overlay
func (r *Renderer) helpStatusLine() string {
	status := r.renderState.GetConfigStatus()
	return fmt.Sprintf("Config Status: %s (%s)", status.Status, status.Path)
}

// calculateRequiredDimensions returns the size the help content needs at fontSize
func (r *Renderer) calculateRequiredDimensions(fontSize float64) (float64, float64) {
	face := newFace(fontSize)
	rows := r.helpRows()
	warnings := r.helpWarnings()
	lineHeight := fontSize * 1.5

	height := helpPadding*2 + fontSize*2 + lineHeight*1.5
	height += float64(len(rows)) * lineHeight
	height += lineHeight * 3 // spacing, "System:", status
	height += float64(len(warnings)) * lineHeight

	actionW, inputW, descW := helpColumns(rows, face)
	width := 40 + actionW + 20 + 30 + inputW + 20 + descW + helpPadding

	for _, line := range append([]string{r.helpStatusLine()}, warnings...) {
		if w, _ := text.Measure(line, face, 0); w+helpPadding*2+80 > width {
			width = w + helpPadding*2 + 80
		}
	}
	return width, height
}

// calculateOptimalFontSize finds the largest font size that fits within the given dimensions
func (r *Renderer) calculateOptimalFontSize(availableWidth, availableHeight float64) (float64, bool) {
	fits := func(size float64) bool {
		w, h := r.calculateRequiredDimensions(size)
		return w <= availableWidth && h <= availableHeight
	}

	maxFontSize := r.renderState.GetFontSize()
	if !fits(helpMinFontSize) {
		return helpMinFontSize, false
	}
	if fits(maxFontSize) {
		return maxFontSize, true
	}

	// Binary search for optimal font size
	low, high := helpMinFontSize, maxFontSize
	for high-low > 0.5 {
		mid := (low + high) / 2
		if fits(mid) {
			low = mid
		} else {
			high = mid
		}
	}
	return low, true
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	if globalFontSource == nil {
		return
	}
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	fontSize, canFit := r.calculateOptimalFontSize(w-helpPadding*2, h-helpPadding*2)
	if !canFit {
		r.drawMarginTooSmallMessage(screen)
		return
	}

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, helpPadding, helpPadding, w-helpPadding*2, h-helpPadding*2, bgColorMedium)

	face := newFace(fontSize)
	rows := r.helpRows()
	lineHeight := fontSize * 1.5

	y := helpPadding + 30
	DrawText(screen, "HELP:", face, helpPadding+20, y, colorWhite)
	y += fontSize * 2
	DrawText(screen, "Controls (Keyboard | Mouse):", face, helpPadding+20, y, colorWhite)
	y += lineHeight * 1.5

	actionW, inputW, _ := helpColumns(rows, face)
	actionX := helpPadding + 40
	arrowX := actionX + actionW + 20
	inputX := arrowX + 30
	descX := inputX + inputW + 20

	for _, row := range rows {
		DrawText(screen, row.action, face, actionX, y, colorLightBlue)
		DrawText(screen, "→", face, arrowX, y, colorWhite)

		x := inputX
		if row.keys != "" {
			DrawText(screen, row.keys, face, x, y, colorYellow)
			kw, _ := text.Measure(row.keys, face, 0)
			x += kw
		}
		if row.keys != "" && row.mouse != "" {
			DrawText(screen, " | ", face, x, y, colorWhite)
			sw, _ := text.Measure(" | ", face, 0)
			x += sw
		}
		if row.mouse != "" {
			DrawText(screen, row.mouse, face, x, y, colorCyan)
		}

		DrawText(screen, row.description, face, descX, y, colorGray)
		y += lineHeight
	}

	y += lineHeight
	DrawText(screen, "System:", face, helpPadding+20, y, colorWhite)
	y += lineHeight

	statusColor := colorGreen
	if s := r.renderState.GetConfigStatus().Status; s == "Warning" || s == "Error" {
		statusColor = colorOrange
	}
	DrawText(screen, r.helpStatusLine(), face, helpPadding+40, y, statusColor)
	y += lineHeight

	for _, warning := range r.helpWarnings() {
		DrawText(screen, warning, face, helpPadding+40, y, colorLightRed)
		y += lineHeight
	}
}

// drawMarginTooSmallMessage is shown when the help cannot fit the window
func (r *Renderer) drawMarginTooSmallMessage(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)

	face := newFace(16)
	message := "Hanc marginis exiguitas non caperet."
	subtitle := "(This margin is too small to contain it.)"

	mw, mh := text.Measure(message, face, 0)
	sw, _ := text.Measure(subtitle, face, 0)
	my := h/2 - mh/2
	DrawText(screen, message, face, w/2-mw/2, my, colorWhite)
	DrawText(screen, subtitle, face, w/2-sw/2, my+mh+10, colorGray)
}

func (r *Renderer) drawPageInputOverlay(screen *ebiten.Image) {
	inputFont := newFace(r.renderState.GetFontSize())
	rangeFont := newFace(r.renderState.GetFontSize() * 0.8)
	if inputFont == nil {
		return
	}

	inputText := fmt.Sprintf("Go to page: %s_", r.renderState.GetPageInputBuffer())
	rangeText := fmt.Sprintf("(1-%d)", r.renderState.GetTotalPagesCount())

	inputWidth, inputHeight := text.Measure(inputText, inputFont, 0)
	rangeWidth, rangeHeight := text.Measure(rangeText, rangeFont, 0)

	const padding, gap = 20.0, 10.0
	boxWidth := math.Max(inputWidth, rangeWidth) + padding*2
	boxHeight := inputHeight + rangeHeight + gap + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, inputText, inputFont, boxX+(boxWidth-inputWidth)/2, boxY+padding, colorWhite)
	DrawText(screen, rangeText, rangeFont, boxX+(boxWidth-rangeWidth)/2, boxY+padding+inputHeight+gap, colorLightGray)
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image) {
	face := newFace(r.renderState.GetFontSize())
	if face == nil {
		return
	}
	message := r.renderState.GetOverlayMessage()
	textWidth, textHeight := text.Measure(message, face, 0)

	const padding = 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, face, boxX+padding, boxY+padding, colorWhite)
}

// buildPageNumberString formats the toolbar page status
func (r *Renderer) buildPageNumberString() string {
	return formatPageStatus(r.renderState.GetCurrentPageNumber(), r.renderState.GetTotalPagesCount(), r.renderState.GetZoomLevel())
}

func formatPageStatus(page, total int, zoom float64) string {
	return fmt.Sprintf("%d / %d  %.0f%%", page, total, zoom*100)
}
