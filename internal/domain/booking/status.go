package booking

import "github.com/barberflow/barberflow-server/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

func InitialStatus() Status {
	return StatusPending
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCanceled
}

// ===============================
// Transition Guard
// ===============================

// CanTransition permite apenas pending → completed e pending → canceled.
// Estados terminais são finais.
func CanTransition(current Status, next Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	if next != StatusCompleted && next != StatusCanceled {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}
