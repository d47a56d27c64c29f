package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DoubleClickTracker tracks double-click state
type DoubleClickTracker struct {
	lastClickTime   time.Time
	lastClickButton ebiten.MouseButton
	clickCount      int
}

// MouseCombination represents a mouse action with optional modifiers
type MouseCombination struct {
	Button        ebiten.MouseButton
	IsWheel       bool
	WheelDeltaX   float64
	WheelDeltaY   float64
	IsDoubleClick bool
	Shift         bool
	Ctrl          bool
	Alt           bool
}

// MousebindingManager handles dynamic mouse binding processing
type MousebindingManager struct {
	mousebindings      map[string][]string
	parsed             map[string][]MouseCombination
	settings           MouseSettings
	doubleClickTracker DoubleClickTracker
	now                func() time.Time
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	mm := &MousebindingManager{
		settings: settings,
		now:      time.Now,
	}
	mm.UpdateMousebindings(mousebindings)
	return mm
}

// getMouseMapping returns a mapping from string mouse actions to Ebiten mouse buttons
func getMouseMapping() map[string]ebiten.MouseButton {
	return map[string]ebiten.MouseButton{
		"LeftClick":   ebiten.MouseButtonLeft,
		"RightClick":  ebiten.MouseButtonRight,
		"MiddleClick": ebiten.MouseButtonMiddle,
		"Back":        ebiten.MouseButton3, // side button
		"Forward":     ebiten.MouseButton4, // side button
	}
}

// parseMouseString parses a mouse string like "Ctrl+WheelUp" or
// "DoubleLeftClick" into a MouseCombination
func parseMouseString(mouseStr string) (MouseCombination, error) {
	if mouseStr == "" {
		return MouseCombination{}, fmt.Errorf("empty mouse string")
	}
	parts := strings.Split(mouseStr, "+")
	combination := MouseCombination{}
	mapping := getMouseMapping()

	// Last part should be the actual mouse action
	actionName := parts[len(parts)-1]

	switch {
	case strings.HasPrefix(actionName, "Wheel"):
		combination.IsWheel = true
		switch actionName {
		case "WheelUp":
			combination.WheelDeltaY = 1.0
		case "WheelDown":
			combination.WheelDeltaY = -1.0
		case "WheelLeft":
			combination.WheelDeltaX = -1.0
		case "WheelRight":
			combination.WheelDeltaX = 1.0
		default:
			return MouseCombination{}, fmt.Errorf("unknown wheel action: %s", actionName)
		}
	case strings.HasPrefix(actionName, "Double"):
		combination.IsDoubleClick = true
		button, exists := mapping[strings.TrimPrefix(actionName, "Double")]
		if !exists {
			return MouseCombination{}, fmt.Errorf("unknown mouse button: %s", actionName)
		}
		combination.Button = button
	default:
		button, exists := mapping[actionName]
		if !exists {
			return MouseCombination{}, fmt.Errorf("unknown mouse button: %s", actionName)
		}
		combination.Button = button
	}

	for _, modifier := range parts[:len(parts)-1] {
		switch strings.ToLower(modifier) {
		case "shift":
			combination.Shift = true
		case "ctrl":
			combination.Ctrl = true
		case "alt":
			combination.Alt = true
		default:
			return MouseCombination{}, fmt.Errorf("unknown modifier: %s", modifier)
		}
	}

	return combination, nil
}

// validateMousebindings checks every mouse string and rejects a mouse
// action bound to two actions.
func validateMousebindings(mousebindings map[string][]string) error {
	seen := make(map[string]string)
	for action, mouseStrings := range mousebindings {
		for _, mouseStr := range mouseStrings {
			if _, err := parseMouseString(mouseStr); err != nil {
				return fmt.Errorf("invalid mouse action '%s' for action '%s': %w", mouseStr, action, err)
			}
			if existing, exists := seen[mouseStr]; exists {
				return fmt.Errorf("mouse conflict: '%s' is bound to both '%s' and '%s'", mouseStr, existing, action)
			}
			seen[mouseStr] = action
		}
	}
	return nil
}

func (c MouseCombination) matches(mods Modifiers) bool {
	return c.Shift == mods.Shift && c.Ctrl == mods.Ctrl && c.Alt == mods.Alt
}

// wheelMatches reports whether the wheel movement goes in the combination's
// direction after sensitivity and inversion are applied.
func wheelMatches(combination MouseCombination, wheelX, wheelY float64, settings MouseSettings) bool {
	if settings.WheelInverted {
		wheelY = -wheelY
	}
	wheelX *= settings.WheelSensitivity
	wheelY *= settings.WheelSensitivity

	if combination.WheelDeltaX != 0 {
		return (combination.WheelDeltaX > 0 && wheelX > 0) || (combination.WheelDeltaX < 0 && wheelX < 0)
	}
	if combination.WheelDeltaY != 0 {
		return (combination.WheelDeltaY > 0 && wheelY > 0) || (combination.WheelDeltaY < 0 && wheelY < 0)
	}
	return false
}

// isMouseActionTriggered checks if a mouse combination is triggered this frame
func (mm *MousebindingManager) isMouseActionTriggered(combination MouseCombination) bool {
	if !mm.settings.EnableMouse || !combination.matches(currentModifiers()) {
		return false
	}

	if combination.IsWheel {
		wheelX, wheelY := ebiten.Wheel()
		return wheelMatches(combination, wheelX, wheelY, mm.settings)
	}

	if !inpututil.IsMouseButtonJustPressed(combination.Button) {
		return false
	}
	if combination.IsDoubleClick {
		return mm.registerClick(combination.Button, mm.now())
	}
	return true
}

// registerClick records a click and reports whether it completes a double-click.
func (mm *MousebindingManager) registerClick(button ebiten.MouseButton, now time.Time) bool {
	tracker := &mm.doubleClickTracker
	window := time.Duration(mm.settings.DoubleClickTime) * time.Millisecond

	if tracker.clickCount > 0 && tracker.lastClickButton == button && now.Sub(tracker.lastClickTime) <= window {
		tracker.clickCount = 0
		tracker.lastClickTime = now
		return true
	}

	// First click or different button
	tracker.clickCount = 1
	tracker.lastClickButton = button
	tracker.lastClickTime = now
	return false
}

// CheckAction checks if any mouse binding for the given action is triggered
func (mm *MousebindingManager) CheckAction(action string) bool {
	for _, combination := range mm.parsed[action] {
		if mm.isMouseActionTriggered(combination) {
			return true
		}
	}
	return false
}

// TriggeredActions returns, in stable order, the actions whose mouse
// bindings fired this frame. Click bindings are only considered when
// clicks is true.
func (mm *MousebindingManager) TriggeredActions(clicks bool) []string {
	var triggered []string
	for _, def := range actionDefinitions {
		for _, combination := range mm.parsed[def.Name] {
			if !combination.IsWheel && !clicks {
				continue
			}
			if mm.isMouseActionTriggered(combination) {
				triggered = append(triggered, def.Name)
				break
			}
		}
	}
	return triggered
}

// GetMousebindings returns the current mouse bindings map (for display purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}

// UpdateMousebindings replaces the mouse bindings map
func (mm *MousebindingManager) UpdateMousebindings(mousebindings map[string][]string) {
	mm.mousebindings = mousebindings
	mm.parsed = make(map[string][]MouseCombination, len(mousebindings))
	for action, mouseStrings := range mousebindings {
		for _, mouseStr := range mouseStrings {
			if combination, err := parseMouseString(mouseStr); err == nil {
				mm.parsed[action] = append(mm.parsed[action], combination)
			}
		}
	}
}

// UpdateSettings updates the mouse settings
func (mm *MousebindingManager) UpdateSettings(settings MouseSettings) {
	mm.settings = settings
}

// GetSettings returns the current mouse settings
func (mm *MousebindingManager) GetSettings() MouseSettings {
	return mm.settings
}
