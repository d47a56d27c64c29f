package main

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// Action names shared by buttons, keybindings and mouse bindings.
const (
	actionExit         = "exit"
	actionHelp         = "help"
	actionOpenFile     = "open_file"
	actionNextPage     = "next_page"
	actionPreviousPage = "previous_page"
	actionPageInput    = "page_input"
	actionJumpFirst    = "jump_first"
	actionJumpLast     = "jump_last"
	actionZoomIn       = "zoom_in"
	actionZoomOut      = "zoom_out"
	actionFitWidth     = "fit_width"
	actionFitHeight    = "fit_height"
	actionScrollUp     = "scroll_up"
	actionScrollDown   = "scroll_down"
	actionFullscreen   = "fullscreen"
	actionToggleQuiet  = "toggle_quiet"
	actionOpenMusic    = "open_music"
	actionPlayMusic    = "play_music"
	actionPauseMusic   = "pause_music"
	actionTogglePlay   = "toggle_play"
	actionNextTrack    = "next_track"
	actionShuffleMusic = "shuffle_music"
	actionStopMusic    = "stop_music"
)

// actionDefinitions contains all action definitions with default keybindings, mouse bindings, and descriptions
var actionDefinitions = []ActionDefinition{
	{actionExit, []string{"Ctrl+KeyQ"}, []string{}, "Quit application"},
	{actionHelp, []string{"Shift+Slash"}, []string{}, "Show/hide help"},
	{actionOpenFile, []string{"Ctrl+KeyO"}, []string{}, "Open a PDF or comic archive"},
	{actionNextPage, []string{"ArrowRight", "PageDown"}, []string{"Forward"}, "Next page"},
	{actionPreviousPage, []string{"ArrowLeft", "PageUp"}, []string{"Back"}, "Previous page"},
	{actionPageInput, []string{"KeyG"}, []string{}, "Go to page (enter page number)"},
	{actionJumpFirst, []string{"Home"}, []string{}, "Jump to first page"},
	{actionJumpLast, []string{"End"}, []string{}, "Jump to last page"},
	{actionZoomIn, []string{"Equal", "Shift+Equal"}, []string{"Ctrl+WheelUp"}, "Zoom in"},
	{actionZoomOut, []string{"Minus"}, []string{"Ctrl+WheelDown"}, "Zoom out"},
	{actionFitWidth, []string{"KeyW"}, []string{}, "Fit page width to window"},
	{actionFitHeight, []string{"KeyH"}, []string{}, "Fit page height to window"},
	{actionScrollUp, []string{"ArrowUp"}, []string{"WheelUp"}, "Scroll up"},
	{actionScrollDown, []string{"ArrowDown"}, []string{"WheelDown"}, "Scroll down"},
	{actionFullscreen, []string{"F11", "Escape"}, []string{"DoubleLeftClick"}, "Toggle fullscreen"},
	{actionToggleQuiet, []string{"KeyQ"}, []string{}, "Toggle quiet mode (hide music panel)"},
	{actionOpenMusic, []string{"Ctrl+KeyM"}, []string{}, "Open music files"},
	{actionPlayMusic, []string{}, []string{}, "Play music"},
	{actionPauseMusic, []string{}, []string{}, "Pause music"},
	{actionTogglePlay, []string{"Space"}, []string{}, "Play/pause music"},
	{actionNextTrack, []string{"Ctrl+ArrowRight"}, []string{}, "Next track"},
	{actionShuffleMusic, []string{"KeyS"}, []string{}, "Shuffle playlist"},
	{actionStopMusic, []string{}, []string{}, "Stop music"},
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = action.MouseActions
	}
	return mousebindings
}
