package main

import (
	"github.com/rs/zerolog/log"
)

// ActionHandler runs one named action. A returned error is reported to the
// user once and the action is considered handled.
type ActionHandler func() error

// ActionExecutor is the command dispatch table shared by buttons,
// keybindings and mouse bindings.
type ActionExecutor struct {
	handlers map[string]ActionHandler
	report   func(error)
}

// NewActionExecutor creates a new ActionExecutor. Report receives handler errors.
func NewActionExecutor(report func(error)) *ActionExecutor {
	return &ActionExecutor{
		handlers: make(map[string]ActionHandler),
		report:   report,
	}
}

// Register binds a handler to an action name, replacing any previous one.
func (ae *ActionExecutor) Register(action string, handler ActionHandler) {
	ae.handlers[action] = handler
}

// Has reports whether an action is registered.
func (ae *ActionExecutor) Has(action string) bool {
	_, ok := ae.handlers[action]
	return ok
}

// ExecuteAction runs the handler for action. It returns false for unknown actions.
func (ae *ActionExecutor) ExecuteAction(action string) bool {
	handler, ok := ae.handlers[action]
	if !ok {
		return false
	}

	debugLog("action %s", action)
	if err := handler(); err != nil {
		log.Error().Err(err).Str("action", action).Msg("action failed")
		if ae.report != nil {
			ae.report(err)
		}
	}
	return true
}
