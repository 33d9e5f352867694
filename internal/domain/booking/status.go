package booking

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ActiveStatuses são os status que ocupam horário na agenda.
// Reservas canceladas ou no-show liberam o horário imediatamente.
func ActiveStatuses() []string {
	return []string{string(StatusConfirmed), string(StatusCompleted)}
}

// ===============================
// Validations
// ===============================

// Transições permitidas: confirmed → {completed, cancelled, no_show}.
// Os três estados finais são terminais.

func CanCancel(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusConfirmed
}
