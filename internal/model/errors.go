package model

import (
	"fmt"
	"strings"
)

// ParseError reports malformed dictionary or mapping configuration.
// Callers may recover by keeping their last known-good configuration.
type ParseError struct {
	Source string // File name or "inline"
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "parse " + e.Source + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a run that cannot start: a referenced column
// is absent, a rename collides, or a config value is invalid
type ConfigurationError struct {
	Missing []string // Required columns absent after renaming
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		quoted := make([]string, len(e.Missing))
		for i, m := range e.Missing {
			quoted[i] = fmt.Sprintf("%q", m)
		}
		msg := "missing required column(s): " + strings.Join(quoted, ", ")
		if e.Reason != "" {
			msg += " (" + e.Reason + ")"
		}
		return msg
	}
	return "configuration: " + e.Reason
}
