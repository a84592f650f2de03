package booking

import (
	"context"

	domain "github.com/barberflow/barberflow-server/internal/domain/booking"
	"github.com/barberflow/barberflow-server/internal/models"
	"github.com/barberflow/barberflow-server/internal/store"
)

// Store é o contrato dos casos de uso com o Appointment Store.
type Store interface {
	List(ctx context.Context) []models.Appointment
	Create(ctx context.Context, d domain.Draft) (*store.CreateResult, error)
	Get(ctx context.Context, id string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, ap *models.Appointment) error
}
