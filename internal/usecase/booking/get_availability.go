package booking

import (
	"context"

	domain "github.com/barberflow/barberflow-server/internal/domain/booking"
)

type GetAvailability struct {
	store Store
}

func NewGetAvailability(store Store) *GetAvailability {
	return &GetAvailability{store: store}
}

// Execute devolve a grade inteira do dia com a flag de ocupação, recalculada
// contra o snapshot mais recente a cada chamada.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
) []domain.SlotAvailability {

	snapshot := uc.store.List(ctx)
	return domain.DaySlots(snapshot, date)
}
