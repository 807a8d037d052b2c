package prefs

import (
	"fmt"
	"strings"
)

// QuestionStyle biases which kind of question the backend generates.
type QuestionStyle string

const (
	StyleConceptual  QuestionStyle = "conceptual"
	StyleApplication QuestionStyle = "application"
	StyleAnalysis    QuestionStyle = "analysis"
	StyleTransfer    QuestionStyle = "transfer"
)

var questionStyles = []QuestionStyle{StyleConceptual, StyleApplication, StyleAnalysis, StyleTransfer}

// QuestionStyles returns the selectable styles. "Any" is represented by a nil
// *QuestionStyle and is not part of this list.
func QuestionStyles() []QuestionStyle {
	out := make([]QuestionStyle, len(questionStyles))
	copy(out, questionStyles)
	return out
}

// Valid reports whether s is a known style.
func (s QuestionStyle) Valid() bool {
	for _, q := range questionStyles {
		if q == s {
			return true
		}
	}
	return false
}

// Label returns the display name.
func (s QuestionStyle) Label() string {
	if s == "" {
		return "Any"
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// StyleLabel returns the label for an optional style.
func StyleLabel(s *QuestionStyle) string {
	if s == nil {
		return "Any"
	}
	return s.Label()
}

// ParseQuestionStyle parses a style name. "any" and "" yield nil.
func ParseQuestionStyle(s string) (*QuestionStyle, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" || norm == "any" {
		return nil, nil
	}
	qs := QuestionStyle(norm)
	if !qs.Valid() {
		return nil, fmt.Errorf("unknown question style %q", s)
	}
	return &qs, nil
}
