package model

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks budget item definitions that cannot be expanded.
	ErrConfiguration = errors.New("configuration error")

	// ErrInputShape marks input tables with missing or malformed fields.
	ErrInputShape = errors.New("input shape error")
)

// ConfigurationError identifies the budget item whose definition is unusable.
type ConfigurationError struct {
	ItemID   int
	ItemName string
	Reason   string
	Err      error
}

func (e *ConfigurationError) Error() string {
	msg := e.Reason
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("budget item %d (%s): %s", e.ItemID, e.ItemName, msg)
}

// Unwrap exposes both ErrConfiguration and the underlying cause.
func (e *ConfigurationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfiguration, e.Err}
	}
	return []error{ErrConfiguration}
}

// InputShapeError identifies the table cell that could not be read.
type InputShapeError struct {
	Table  string
	Row    int // 1-based row in the source table, 0 when not row specific
	Column string
	Reason string
}

func (e *InputShapeError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("%s row %d, column %s: %s", e.Table, e.Row, e.Column, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("%s column %s: %s", e.Table, e.Column, e.Reason)
	case e.Row > 0:
		return fmt.Sprintf("%s row %d: %s", e.Table, e.Row, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Table, e.Reason)
	}
}

func (e *InputShapeError) Unwrap() error { return ErrInputShape }
