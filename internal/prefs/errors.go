package prefs

import (
	"errors"
	"fmt"
)

// ErrUnknownCardType is returned when a card_type is not one of the four
// known card kinds.
var ErrUnknownCardType = errors.New("unknown card type")

// ErrInvalidPreferences is matched by every *ValidationError.
var ErrInvalidPreferences = errors.New("invalid feed preferences")

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid feed preferences: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPreferences
}
