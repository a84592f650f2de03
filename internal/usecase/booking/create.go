package booking

import (
	"context"
	"time"

	"github.com/barberflow/barberflow-server/internal/audit"
	domain "github.com/barberflow/barberflow-server/internal/domain/booking"
	"github.com/barberflow/barberflow-server/internal/domain/wizard"
	"github.com/barberflow/barberflow-server/internal/store"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ClientName  string
	ClientPhone string
	Service     string
	Date        string
	Time        string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	store Store
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCreateBooking(
	store Store,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateBooking {
	return &CreateBooking{
		store: store,
		audit: audit,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute conduz o rascunho pela máquina do wizard, estágio por estágio,
// para que a submissão pela API passe pelos mesmos predicados de
// completude da tela de agendamento.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*store.CreateResult, error) {

	snapshot := uc.store.List(ctx)

	m := wizard.New(uc.loc)

	// --------------------------------------------------
	// 1. Serviço + data
	// --------------------------------------------------
	if err := m.SelectService(domain.ServiceCode(in.Service)); err != nil {
		return nil, err
	}
	if err := m.SelectDate(in.Date); err != nil {
		return nil, err
	}
	if err := m.Next(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Horário (pré-checagem contra o snapshot corrente)
	// --------------------------------------------------
	if err := m.SelectTime(in.Time, snapshot); err != nil {
		return nil, err
	}
	if err := m.Next(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Dados do cliente + submissão
	// --------------------------------------------------
	m.SetClientDetails(in.ClientName, in.ClientPhone)

	res, err := m.Confirm(ctx, uc.store)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    "client",
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &res.Appointment.ID,
		Metadata: map[string]any{
			"source": res.Source,
			"date":   res.Appointment.Date,
			"time":   res.Appointment.Time,
		},
	})

	return res, nil
}
