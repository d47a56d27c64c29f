package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler turns keyboard and mouse events into actions
type InputHandler struct {
	inputActions        InputActions
	inputState          InputState
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, inputState InputState, keybindingManager *KeybindingManager, mousebindingManager *MousebindingManager) *InputHandler {
	return &InputHandler{
		inputActions:        inputActions,
		inputState:          inputState,
		keybindingManager:   keybindingManager,
		mousebindingManager: mousebindingManager,
	}
}

// HandleInput processes all input for the current frame
// Returns true if any input was processed, false otherwise
func (h *InputHandler) HandleInput() bool {
	// Page input mode captures the keyboard
	if h.inputState.IsInPageInputMode() {
		return h.handlePageInputMode()
	}

	inputProcessed := false
	inputProcessed = h.handleKeybindings() || inputProcessed
	inputProcessed = h.handleMouse() || inputProcessed
	return inputProcessed
}

func (h *InputHandler) handleKeybindings() bool {
	inputProcessed := false
	for _, action := range h.keybindingManager.PressedActions() {
		if h.inputActions.ExecuteAction(action) {
			inputProcessed = true
		}
	}
	return inputProcessed
}

func (h *InputHandler) handlePageInputMode() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.inputActions.ExitPageInputMode()
		return true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		h.inputActions.ProcessPageInput()
		h.inputActions.ExitPageInputMode()
		return true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		h.inputActions.UpdatePageInputBuffer(trimLastRune(h.inputState.GetPageInputBuffer()))
		return true
	}

	// Handle digit input (both regular and numpad)
	var digit string
	if digit = h.checkDigitKeys(ebiten.Key0, ebiten.Key9, '0'); digit == "" {
		digit = h.checkDigitKeys(ebiten.KeyNumpad0, ebiten.KeyNumpad9, '0')
	}
	if digit != "" {
		h.inputActions.UpdatePageInputBuffer(h.inputState.GetPageInputBuffer() + digit)
		return true
	}

	return false
}

func trimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

func (h *InputHandler) checkDigitKeys(startKey, endKey ebiten.Key, baseChar rune) string {
	for key := startKey; key <= endKey; key++ {
		if inpututil.IsKeyJustPressed(key) {
			return string(baseChar + rune(key-startKey))
		}
	}
	return ""
}

// handleMouse routes clicks to buttons and the slider; other clicks and
// the wheel go through the mouse bindings.
func (h *InputHandler) handleMouse() bool {
	x, y := ebiten.CursorPosition()
	layout := h.inputState.GetLayout()
	slider := layout.Slider

	if h.inputState.IsSeeking() {
		percent := slider.PercentAt(x)
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			h.inputActions.EndSeek(percent)
		} else {
			h.inputActions.PreviewSeek(percent)
		}
		return true
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if b, ok := layout.ButtonAt(x, y); ok {
			h.inputActions.ExecuteAction(b.Action)
			return true
		}
		if !slider.Rect.Empty() && slider.Contains(x, y) {
			h.inputActions.BeginSeek()
			h.inputActions.PreviewSeek(slider.PercentAt(x))
			return true
		}
	}

	inViewport := image.Pt(x, y).In(layout.Viewport)
	inputProcessed := false
	for _, action := range h.mousebindingManager.TriggeredActions(inViewport) {
		if h.inputActions.ExecuteAction(action) {
			inputProcessed = true
		}
	}
	return inputProcessed
}
