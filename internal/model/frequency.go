package model

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// FrequencyType is the recurrence rule of a budget item.
type FrequencyType int

const (
	FrequencyUnknown FrequencyType = iota
	Daily
	Weekly
	BiWeekly
	Monthly
	Annual
	OneTime
)

var frequencyLabels = map[FrequencyType]string{
	Daily:    "Daily",
	Weekly:   "Weekly",
	BiWeekly: "Bi-Weekly",
	Monthly:  "Monthly",
	Annual:   "Annual",
	OneTime:  "One-Time",
}

// FrequencyTypes lists every valid frequency in display order.
var FrequencyTypes = []FrequencyType{Daily, Weekly, BiWeekly, Monthly, Annual, OneTime}

func (f FrequencyType) String() string {
	if s, ok := frequencyLabels[f]; ok {
		return s
	}
	return "Unknown"
}

// UsesDayOfMonth reports whether FrequencyDay is a day-of-month anchor.
func (f FrequencyType) UsesDayOfMonth() bool {
	return f == Monthly
}

// UnknownFrequencyError is returned when a frequency label matches none of the
// supported kinds.
type UnknownFrequencyError struct {
	Label      string
	Suggestion string
}

func (e *UnknownFrequencyError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown frequency type %q (did you mean %q?)", e.Label, e.Suggestion)
	}
	return fmt.Sprintf("unknown frequency type %q", e.Label)
}

// ParseFrequencyType maps an input label ("Bi-Weekly", "One-Time", ...) to its
// FrequencyType. Matching is exact after trimming whitespace.
func ParseFrequencyType(label string) (FrequencyType, error) {
	label = strings.TrimSpace(label)
	for _, f := range FrequencyTypes {
		if frequencyLabels[f] == label {
			return f, nil
		}
	}
	return FrequencyUnknown, &UnknownFrequencyError{Label: label, Suggestion: suggestFrequency(label)}
}

// suggestFrequency returns the closest valid label when it is within a few
// edits of the input, or "" when nothing is close.
func suggestFrequency(label string) string {
	if label == "" {
		return ""
	}
	best, bestDist := "", 4
	for _, f := range FrequencyTypes {
		d := levenshtein.ComputeDistance(strings.ToLower(label), strings.ToLower(frequencyLabels[f]))
		if d < bestDist {
			best, bestDist = frequencyLabels[f], d
		}
	}
	return best
}
