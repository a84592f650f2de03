package booking

import (
	"strings"
	"time"

	"github.com/barberflow/barberflow-server/internal/httperr"
	"github.com/barberflow/barberflow-server/internal/validators"
)

// Draft são os campos de um agendamento antes de id/status/createdAt.
type Draft struct {
	ClientName  string
	ClientPhone string
	Service     ServiceCode
	Date        string
	Time        string
}

// Source indica se uma escrita foi durável (remota) ou provisória (local).
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Validate aplica as regras de submissão: serviço do catálogo, data dentro
// da janela, horário da grade e contato preenchido após trim.
func (d Draft) Validate(now time.Time) error {
	if _, ok := ServiceByCode(d.Service); !ok {
		return httperr.ErrBusiness("invalid_service")
	}

	if !IsBookableDate(d.Date, now) {
		return httperr.ErrBusiness("invalid_date")
	}

	if !IsValidSlot(d.Time) {
		return httperr.ErrBusiness("invalid_time")
	}

	if strings.TrimSpace(d.ClientName) == "" {
		return httperr.ErrBusiness("missing_client_name")
	}

	if !validators.IsPhonePlausible(d.ClientPhone) {
		return httperr.ErrBusiness("missing_client_phone")
	}

	return nil
}
