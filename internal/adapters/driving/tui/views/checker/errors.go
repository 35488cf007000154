package checker

import "errors"

// ErrNoPanel is returned when the view is created without a checker panel.
var ErrNoPanel = errors.New("checker: panel is required")
