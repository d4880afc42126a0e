package engine

import (
	"errors"
	"fmt"
)

// Code categorizes placement rejections.
//
// Rejections are expected, typed outcomes of the validation pipeline:
// control flow, not exceptions. They are surfaced to the notification
// collaborator and returned to callers; nothing in this package panics or
// aborts for them.
type Code string

const (
	// CodeTargetPositionInvalid indicates the destination is out of bounds.
	CodeTargetPositionInvalid Code = "TARGET_POSITION_INVALID"

	// CodeTargetOccupied indicates the destination slot is already bound.
	// There is no silent overwrite.
	CodeTargetOccupied Code = "TARGET_OCCUPIED"

	// CodeSourceNotFound indicates the referenced source item does not exist.
	CodeSourceNotFound Code = "SOURCE_NOT_FOUND"

	// CodeSourceAlreadyUsed indicates the source item is already placed.
	CodeSourceAlreadyUsed Code = "SOURCE_ALREADY_USED"

	// CodeSourceLocked indicates a concurrent assignment holds the item's
	// lock. Callers that don't care about the distinction may treat this
	// as the same class as CodeSourceAlreadyUsed.
	CodeSourceLocked Code = "SOURCE_LOCKED"
)

// Rejection is a typed refusal of a placement request.
//
// SourceItemID and Position carry the request context when known; Position
// is -1 when no destination applies.
type Rejection struct {
	Code         Code
	Message      string
	SourceItemID string
	Position     int
}

// Error implements the error interface.
func (e *Rejection) Error() string {
	switch {
	case e.SourceItemID != "" && e.Position >= 0:
		return fmt.Sprintf("%s: %s (item=%s, position=%d)", e.Code, e.Message, e.SourceItemID, e.Position)
	case e.SourceItemID != "":
		return fmt.Sprintf("%s: %s (item=%s)", e.Code, e.Message, e.SourceItemID)
	case e.Position >= 0:
		return fmt.Sprintf("%s: %s (position=%d)", e.Code, e.Message, e.Position)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// AsRejection unwraps err to a *Rejection if one is in the chain.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// IsCode reports whether err is a rejection with the given code.
// Uses errors.As to handle wrapped errors.
func IsCode(err error, code Code) bool {
	if rej, ok := AsRejection(err); ok {
		return rej.Code == code
	}
	return false
}
