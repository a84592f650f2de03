package booking

import (
	"context"
	"sort"

	domain "github.com/barberflow/barberflow-server/internal/domain/booking"
	"github.com/barberflow/barberflow-server/internal/dto"
)

type ListAppointmentsByDate struct {
	store Store
}

func NewListAppointmentsByDate(store Store) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{store: store}
}

// Execute filtra o snapshot pela data e ordena por horário. A ordenação é
// preocupação de apresentação, aplicada aqui e não no store.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date string,
) []dto.AppointmentListDTO {

	snapshot := uc.store.List(ctx)

	out := make([]dto.AppointmentListDTO, 0)
	for _, ap := range snapshot {
		if ap.Date != date {
			continue
		}

		item := dto.AppointmentListDTO{
			ID:          ap.ID,
			Time:        ap.Time,
			Status:      ap.Status,
			ClientName:  ap.ClientName,
			ClientPhone: ap.ClientPhone,
			Service:     ap.Service,
		}

		if svc, ok := domain.ServiceByCode(domain.ServiceCode(ap.Service)); ok {
			item.ServiceName = svc.Name
			item.Price = svc.Price
		}

		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})

	return out
}
