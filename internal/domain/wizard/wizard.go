package wizard

import (
	"context"
	"strings"
	"time"

	"github.com/barberflow/barberflow-server/internal/domain/booking"
	"github.com/barberflow/barberflow-server/internal/httperr"
	"github.com/barberflow/barberflow-server/internal/models"
	"github.com/barberflow/barberflow-server/internal/store"
)

// ======================================================
// ESTÁGIOS
// ======================================================

type Stage int

const (
	StageSelectService Stage = iota
	StageSelectTime
	StageEnterDetails
	StageConfirmed
)

func (s Stage) String() string {
	switch s {
	case StageSelectService:
		return "select_service"
	case StageSelectTime:
		return "select_time"
	case StageEnterDetails:
		return "enter_details"
	case StageConfirmed:
		return "confirmed"
	}
	return "unknown"
}

// Creator é satisfeito pelo Appointment Store.
type Creator interface {
	Create(ctx context.Context, d booking.Draft) (*store.CreateResult, error)
}

// ======================================================
// MÁQUINA
// ======================================================

// Machine é o fluxo linear de 3 etapas do agendamento: serviço + data →
// horário → dados do cliente. Avanço é travado por predicados de
// completude; voltar nunca descarta o que já foi preenchido.
type Machine struct {
	stage Stage
	draft booking.Draft
	loc   *time.Location
}

func New(loc *time.Location) *Machine {
	if loc == nil {
		loc = time.Local
	}
	return &Machine{
		stage: StageSelectService,
		loc:   loc,
	}
}

func (m *Machine) Stage() Stage {
	return m.stage
}

func (m *Machine) Draft() booking.Draft {
	return m.draft
}

// ======================================================
// SELEÇÕES
// ======================================================

func (m *Machine) SelectService(code booking.ServiceCode) error {
	if _, ok := booking.ServiceByCode(code); !ok {
		return httperr.ErrBusiness("invalid_service")
	}
	m.draft.Service = code
	return nil
}

func (m *Machine) SelectDate(date string) error {
	now := time.Now().In(m.loc)
	if !booking.IsBookableDate(date, now) {
		return httperr.ErrBusiness("invalid_date")
	}
	m.draft.Date = date
	return nil
}

// SelectTime checa disponibilidade contra o snapshot no momento da escolha.
// A checagem é consultiva; o conflito real só aparece no Confirm.
func (m *Machine) SelectTime(slot string, snapshot []models.Appointment) error {
	if !booking.IsValidSlot(slot) {
		return httperr.ErrBusiness("invalid_time")
	}
	if booking.IsSlotBooked(snapshot, m.draft.Date, slot) {
		return httperr.ErrBusiness("slot_unavailable")
	}
	m.draft.Time = slot
	return nil
}

func (m *Machine) SetClientDetails(name, phone string) {
	m.draft.ClientName = name
	m.draft.ClientPhone = phone
}

// ======================================================
// TRANSIÇÕES
// ======================================================

// Next avança um estágio, se o estágio atual estiver completo.
func (m *Machine) Next() error {
	switch m.stage {
	case StageSelectService:
		if m.draft.Service == "" || m.draft.Date == "" {
			return httperr.ErrBusiness("incomplete_stage")
		}
		m.stage = StageSelectTime
		return nil

	case StageSelectTime:
		if m.draft.Time == "" {
			return httperr.ErrBusiness("incomplete_stage")
		}
		m.stage = StageEnterDetails
		return nil

	case StageEnterDetails:
		// avançar daqui é Confirm, nunca Next
		return httperr.ErrBusiness("confirm_required")
	}
	return httperr.ErrBusiness("terminal_stage")
}

// Back volta um estágio sem descartar nada já preenchido.
func (m *Machine) Back() error {
	switch m.stage {
	case StageSelectTime:
		m.stage = StageSelectService
	case StageEnterDetails:
		m.stage = StageSelectTime
	default:
		return httperr.ErrBusiness("cannot_go_back")
	}
	return nil
}

// Confirm valida o rascunho completo e submete ao store. Em conflito de
// horário a máquina volta para a escolha de horário; em qualquer outra
// falha permanece em enter_details para nova tentativa.
func (m *Machine) Confirm(ctx context.Context, creator Creator) (*store.CreateResult, error) {
	if m.stage != StageEnterDetails {
		return nil, httperr.ErrBusiness("invalid_stage")
	}

	m.draft.ClientName = strings.TrimSpace(m.draft.ClientName)
	m.draft.ClientPhone = strings.TrimSpace(m.draft.ClientPhone)

	now := time.Now().In(m.loc)
	if err := m.draft.Validate(now); err != nil {
		return nil, err
	}

	res, err := creator.Create(ctx, m.draft)
	if err != nil {
		if httperr.IsBusiness(err, "slot_conflict") {
			m.draft.Time = ""
			m.stage = StageSelectTime
		}
		return nil, err
	}

	m.stage = StageConfirmed
	return res, nil
}

// Reset prepara um novo agendamento, limpando todos os campos.
func (m *Machine) Reset() {
	m.stage = StageSelectService
	m.draft = booking.Draft{}
}
