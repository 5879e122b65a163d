package booking

import "github.com/salonora/salon-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// Terminal states admit no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ===============================
// Transition table
// ===============================

// CanTransition is the whole state machine:
//
//	pending     -> confirmed, cancelled, no_show
//	confirmed   -> in_progress, completed, cancelled, no_show
//	in_progress -> completed, cancelled, no_show
func CanTransition(from, to Status) bool {
	if from.Terminal() || !to.Valid() {
		return false
	}

	switch to {
	case StatusCancelled, StatusNoShow:
		return true
	case StatusConfirmed:
		return from == StatusPending
	case StatusInProgress:
		return from == StatusConfirmed
	case StatusCompleted:
		return from == StatusConfirmed || from == StatusInProgress
	}
	return false
}

func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return httperr.ErrField("status", "invalid_transition")
	}
	return nil
}

// InitialStatus depends on the business auto-confirm setting.
func InitialStatus(autoConfirm bool) Status {
	if autoConfirm {
		return StatusConfirmed
	}
	return StatusPending
}
