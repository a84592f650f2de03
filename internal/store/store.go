package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/barberflow/barberflow-server/internal/domain/booking"
	"github.com/barberflow/barberflow-server/internal/httperr"
	"github.com/barberflow/barberflow-server/internal/models"
)

// ======================================================
// COLABORADORES EXTERNOS
// ======================================================

// RemoteRepository é o backend primário (tabela remota).
type RemoteRepository interface {
	List(ctx context.Context) ([]models.Appointment, error)
	Insert(ctx context.Context, ap *models.Appointment) error
	Update(ctx context.Context, ap *models.Appointment) error
	Get(ctx context.Context, id string) (*models.Appointment, error)
}

// LocalCache é o fallback persistente (sombra local do snapshot).
type LocalCache interface {
	ReadAll() ([]models.Appointment, error)
	WriteAll(apps []models.Appointment) error
}

// ======================================================
// STORE
// ======================================================

// CreateResult marca a origem da escrita: remote é durável; local é
// provisório, visível só neste processo até um snapshot remoto sobrescrever
// a sombra. Não há reconciliação local → remoto.
type CreateResult struct {
	Appointment models.Appointment
	Source      booking.Source
}

type Store struct {
	remote RemoteRepository // nil quando o backend não está configurado
	local  LocalCache
	loc    *time.Location

	// serializa o read-modify-write da sombra local
	mu sync.Mutex
}

func New(remote RemoteRepository, local LocalCache, loc *time.Location) *Store {
	return &Store{
		remote: remote,
		local:  local,
		loc:    loc,
	}
}

// List devolve o snapshot corrente. Nunca falha para o chamador: erro do
// backend cai na sombra local, e erro da sombra devolve lista vazia.
// A ordenação é responsabilidade de quem consome.
func (s *Store) List(ctx context.Context) []models.Appointment {
	if s.remote != nil {
		apps, err := s.remote.List(ctx)
		if err == nil {
			s.mirrorSnapshot(apps)
			return apps
		}
		log.Printf("store: remote list failed, serving local cache: %v", err)
	}

	apps, err := s.local.ReadAll()
	if err != nil {
		log.Printf("store: local cache read failed: %v", err)
		return []models.Appointment{}
	}
	return apps
}

// Create atribui id, status pending e createdAt, e persiste. Backend
// indisponível ou não configurado cai para a sombra local (escrita
// provisória). Conflito de horário detectado pelo insert remoto sobe como
// slot_conflict; nenhum caminho disponível sobe como not_durable.
func (s *Store) Create(ctx context.Context, d booking.Draft) (*CreateResult, error) {
	now := time.Now().In(s.loc)

	ap := models.Appointment{
		ID:          uuid.NewString(),
		ClientName:  d.ClientName,
		ClientPhone: d.ClientPhone,
		Service:     string(d.Service),
		Date:        d.Date,
		Time:        d.Time,
		Status:      string(booking.InitialStatus()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if s.remote != nil {
		err := s.remote.Insert(ctx, &ap)
		if err == nil {
			s.mirrorOne(ap)
			return &CreateResult{Appointment: ap, Source: booking.SourceRemote}, nil
		}

		if httperr.IsBusiness(err, "slot_conflict") {
			return nil, err
		}

		log.Printf("store: remote insert failed, falling back to local cache: %v", err)
	}

	if err := s.appendLocal(ap); err != nil {
		log.Printf("store: local fallback write failed: %v", err)
		return nil, httperr.ErrBusiness("not_durable")
	}

	return &CreateResult{Appointment: ap, Source: booking.SourceLocal}, nil
}

// UpdateStatus espelha a mudança na sombra local independente do resultado
// remoto, para que List subsequente já a reflita; erro remoto sobe para o
// chamador re-buscar o snapshot canônico. A máquina de estados NÃO é
// validada aqui; isso é papel do guard de transição, antes desta chamada.
func (s *Store) UpdateStatus(ctx context.Context, ap *models.Appointment) error {
	s.mirrorOne(*ap)

	if s.remote == nil {
		return nil
	}
	return s.remote.Update(ctx, ap)
}

// Get busca por id no backend primário, caindo na sombra local quando o
// remoto não está configurado ou não responde.
func (s *Store) Get(ctx context.Context, id string) (*models.Appointment, error) {
	if s.remote != nil {
		ap, err := s.remote.Get(ctx, id)
		if err == nil {
			return ap, nil
		}
		if httperr.IsBusiness(err, "appointment_not_found") {
			return nil, err
		}
		log.Printf("store: remote get failed, searching local cache: %v", err)
	}

	apps, err := s.local.ReadAll()
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	for i := range apps {
		if apps[i].ID == id {
			return &apps[i], nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

// Refresh re-busca o snapshot (espelhando a sombra) e poda entradas locais
// com data estritamente anterior a hoje.
func (s *Store) Refresh(ctx context.Context) {
	s.List(ctx)
	s.pruneLocal()
}

// ======================================================
// SOMBRA LOCAL
// ======================================================

func (s *Store) mirrorSnapshot(apps []models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.local.WriteAll(apps); err != nil {
		log.Printf("store: failed to mirror snapshot locally: %v", err)
	}
}

func (s *Store) mirrorOne(ap models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps, err := s.local.ReadAll()
	if err != nil {
		log.Printf("store: failed to read local cache for mirror: %v", err)
		return
	}

	replaced := false
	for i := range apps {
		if apps[i].ID == ap.ID {
			apps[i] = ap
			replaced = true
			break
		}
	}
	if !replaced {
		apps = append(apps, ap)
	}

	if err := s.local.WriteAll(apps); err != nil {
		log.Printf("store: failed to mirror update locally: %v", err)
	}
}

func (s *Store) appendLocal(ap models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps, err := s.local.ReadAll()
	if err != nil {
		return err
	}
	apps = append(apps, ap)
	return s.local.WriteAll(apps)
}

func (s *Store) pruneLocal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := time.Now().In(s.loc).Format(booking.DateLayout)

	apps, err := s.local.ReadAll()
	if err != nil {
		return
	}

	kept := apps[:0]
	for _, ap := range apps {
		if ap.Date >= today {
			kept = append(kept, ap)
		}
	}

	if len(kept) == len(apps) {
		return
	}
	if err := s.local.WriteAll(kept); err != nil {
		log.Printf("store: failed to prune local cache: %v", err)
	}
}
