package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/barberflow/barberflow-server/internal/domain/booking"
	"github.com/barberflow/barberflow-server/internal/httperr"
	"github.com/barberflow/barberflow-server/internal/infra/localstore"
	"github.com/barberflow/barberflow-server/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type fakeRemote struct {
	apps []models.Appointment
	down bool
}

var errDown = errors.New("connection refused")

func (f *fakeRemote) List(ctx context.Context) ([]models.Appointment, error) {
	if f.down {
		return nil, errDown
	}
	out := make([]models.Appointment, len(f.apps))
	copy(out, f.apps)
	return out, nil
}

func (f *fakeRemote) Insert(ctx context.Context, ap *models.Appointment) error {
	if f.down {
		return errDown
	}
	for _, existing := range f.apps {
		if existing.Date == ap.Date && existing.Time == ap.Time &&
			existing.Status != string(booking.StatusCanceled) {
			return httperr.ErrBusiness("slot_conflict")
		}
	}
	f.apps = append(f.apps, *ap)
	return nil
}

func (f *fakeRemote) Update(ctx context.Context, ap *models.Appointment) error {
	if f.down {
		return errDown
	}
	for i := range f.apps {
		if f.apps[i].ID == ap.ID {
			f.apps[i] = *ap
			return nil
		}
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRemote) Get(ctx context.Context, id string) (*models.Appointment, error) {
	if f.down {
		return nil, errDown
	}
	for i := range f.apps {
		if f.apps[i].ID == id {
			ap := f.apps[i]
			return &ap, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

type brokenCache struct{}

func (brokenCache) ReadAll() ([]models.Appointment, error) {
	return nil, errors.New("quota exceeded")
}

func (brokenCache) WriteAll([]models.Appointment) error {
	return errors.New("quota exceeded")
}

// ======================================================
// HELPERS
// ======================================================

func newTestStore(t *testing.T, remote RemoteRepository) (*Store, *localstore.Store) {
	t.Helper()
	local := localstore.New(filepath.Join(t.TempDir(), "appointments.json"))
	return New(remote, local, time.UTC), local
}

func draft(date, slot string) booking.Draft {
	return booking.Draft{
		ClientName:  "Ana Silva",
		ClientPhone: "+551199999999",
		Service:     booking.ServiceHaircut,
		Date:        date,
		Time:        slot,
	}
}

// ======================================================
// TESTES
// ======================================================

func TestCreateThenList_Remote(t *testing.T) {
	remote := &fakeRemote{}
	st, _ := newTestStore(t, remote)
	ctx := context.Background()

	res, err := st.Create(ctx, draft("2026-09-01", "10:00"))
	assert.NoError(t, err)
	assert.Equal(t, booking.SourceRemote, res.Source)
	assert.Equal(t, string(booking.StatusPending), res.Appointment.Status)
	assert.NotEmpty(t, res.Appointment.ID)

	res2, err := st.Create(ctx, draft("2026-09-01", "11:00"))
	assert.NoError(t, err)
	assert.NotEqual(t, res.Appointment.ID, res2.Appointment.ID, "ids devem ser únicos")

	apps := st.List(ctx)
	assert.Len(t, apps, 2)
}

func TestCreate_SlotConflict(t *testing.T) {
	remote := &fakeRemote{}
	st, _ := newTestStore(t, remote)
	ctx := context.Background()

	_, err := st.Create(ctx, draft("2026-09-01", "10:00"))
	assert.NoError(t, err)

	_, err = st.Create(ctx, draft("2026-09-01", "10:00"))
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))

	// conflito NÃO cai para o cache local
	apps := st.List(ctx)
	assert.Len(t, apps, 1)
}

func TestCreate_FallsBackToLocalWhenRemoteDown(t *testing.T) {
	remote := &fakeRemote{down: true}
	st, _ := newTestStore(t, remote)
	ctx := context.Background()

	res, err := st.Create(ctx, draft("2026-09-01", "10:00"))
	assert.NoError(t, err)
	assert.Equal(t, booking.SourceLocal, res.Source, "escrita deve ser marcada como provisória")
	assert.NotEmpty(t, res.Appointment.ID)

	// List com o remoto fora serve a sombra local, incluindo a escrita
	apps := st.List(ctx)
	assert.Len(t, apps, 1)
	assert.Equal(t, res.Appointment.ID, apps[0].ID)
}

func TestCreate_NoBackendConfigured(t *testing.T) {
	st, _ := newTestStore(t, nil)
	ctx := context.Background()

	res, err := st.Create(ctx, draft("2026-09-01", "10:00"))
	assert.NoError(t, err)
	assert.Equal(t, booking.SourceLocal, res.Source)

	apps := st.List(ctx)
	assert.Len(t, apps, 1)
}

func TestCreate_NotDurableWhenBothPathsFail(t *testing.T) {
	st := New(nil, brokenCache{}, time.UTC)

	_, err := st.Create(context.Background(), draft("2026-09-01", "10:00"))
	assert.True(t, httperr.IsBusiness(err, "not_durable"))
}

func TestList_NeverFails(t *testing.T) {
	st := New(&fakeRemote{down: true}, brokenCache{}, time.UTC)

	apps := st.List(context.Background())
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

func TestUpdateStatus_MirrorsLocallyEvenWhenRemoteFails(t *testing.T) {
	remote := &fakeRemote{}
	st, local := newTestStore(t, remote)
	ctx := context.Background()

	res, err := st.Create(ctx, draft("2026-09-01", "10:00"))
	assert.NoError(t, err)

	remote.down = true

	ap := res.Appointment
	assert.NoError(t, booking.Complete(&ap, time.Now().UTC()))

	err = st.UpdateStatus(ctx, &ap)
	assert.Error(t, err, "falha remota sobe para o chamador")

	// mas a sombra local já reflete a mudança
	cached, readErr := local.ReadAll()
	assert.NoError(t, readErr)
	assert.Len(t, cached, 1)
	assert.Equal(t, string(booking.StatusCompleted), cached[0].Status)
}

func TestGet_FallsBackToLocal(t *testing.T) {
	remote := &fakeRemote{}
	st, _ := newTestStore(t, remote)
	ctx := context.Background()

	res, err := st.Create(ctx, draft("2026-09-01", "10:00"))
	assert.NoError(t, err)

	remote.down = true

	ap, err := st.Get(ctx, res.Appointment.ID)
	assert.NoError(t, err)
	assert.Equal(t, res.Appointment.ID, ap.ID)

	_, err = st.Get(ctx, "missing")
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestRefresh_PrunesStaleLocalEntries(t *testing.T) {
	st, local := newTestStore(t, nil)

	today := time.Now().UTC().Format(booking.DateLayout)
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(booking.DateLayout)

	assert.NoError(t, local.WriteAll([]models.Appointment{
		{ID: "old", Date: yesterday, Time: "10:00", Status: "completed"},
		{ID: "cur", Date: today, Time: "11:00", Status: "pending"},
	}))

	st.Refresh(context.Background())

	apps, err := local.ReadAll()
	assert.NoError(t, err)
	assert.Len(t, apps, 1)
	assert.Equal(t, "cur", apps[0].ID)
}

func TestList_MirrorsRemoteSnapshotLocally(t *testing.T) {
	remote := &fakeRemote{apps: []models.Appointment{
		{ID: "r1", Date: "2026-09-01", Time: "10:00", Status: "pending"},
	}}
	st, local := newTestStore(t, remote)
	ctx := context.Background()

	st.List(ctx)

	cached, err := local.ReadAll()
	assert.NoError(t, err)
	assert.Len(t, cached, 1)
	assert.Equal(t, "r1", cached[0].ID)

	// com o remoto fora, a sombra continua servindo o snapshot
	remote.down = true
	apps := st.List(ctx)
	assert.Len(t, apps, 1)
}
