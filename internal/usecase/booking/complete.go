package booking

import (
	"context"
	"time"

	"github.com/barberflow/barberflow-server/internal/audit"
	domain "github.com/barberflow/barberflow-server/internal/domain/booking"
	"github.com/barberflow/barberflow-server/internal/models"
)

type CompleteAppointment struct {
	store Store
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCompleteAppointment(
	store Store,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CompleteAppointment {
	return &CompleteAppointment{
		store: store,
		audit: audit,
		loc:   loc,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.store.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(uc.loc)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.store.UpdateStatus(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    "barber",
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
