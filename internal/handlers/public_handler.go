package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/barberflow/barberflow-server/internal/domain/booking"
	"github.com/barberflow/barberflow-server/internal/httperr"
	"github.com/barberflow/barberflow-server/internal/httpresp"
	ucbooking "github.com/barberflow/barberflow-server/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	createUC       *ucbooking.CreateBooking
	availabilityUC *ucbooking.GetAvailability
	loc            *time.Location
}

func NewPublicHandler(
	createUC *ucbooking.CreateBooking,
	availabilityUC *ucbooking.GetAvailability,
	loc *time.Location,
) *PublicHandler {
	return &PublicHandler{
		createUC:       createUC,
		availabilityUC: availabilityUC,
		loc:            loc,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Service     string `json:"service" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
}

////////////////////////////////////////////////////////
// SERVICES (catálogo fixo)
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	httpresp.List(c, domain.Services())
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = time.Now().In(h.loc).Format(domain.DateLayout)
	}

	if !domain.IsBookableDate(dateStr, time.Now().In(h.loc)) {
		httperr.BadRequest(c, "invalid_date", "Data fora da janela de agendamento.")
		return
	}

	slots := h.availabilityUC.Execute(c.Request.Context(), dateStr)

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	res, err := h.createUC.Execute(
		c.Request.Context(),
		ucbooking.CreateBookingInput{
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			Service:     req.Service,
			Date:        req.Date,
			Time:        req.Time,
		},
	)

	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment": res.Appointment,
		"source":      res.Source,
		"provisional": res.Source == domain.SourceLocal,
	})
}

////////////////////////////////////////////////////////
// ERROS
////////////////////////////////////////////////////////

func mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "slot_conflict"):
		httperr.Conflict(c, "slot_conflict", "Horário acabou de ser ocupado. Escolha outro.")

	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.Conflict(c, "slot_unavailable", "Horário indisponível.")

	case httperr.IsBusiness(err, "not_durable"):
		httperr.Unavailable(c, "not_durable", "Não foi possível salvar o agendamento. Tente novamente.")

	case httperr.IsBusiness(err, "invalid_service"):
		httperr.BadRequest(c, "invalid_service", "Serviço inválido.")

	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Data inválida.")

	case httperr.IsBusiness(err, "invalid_time"):
		httperr.BadRequest(c, "invalid_time", "Horário inválido.")

	case httperr.IsBusiness(err, "missing_client_name"):
		httperr.BadRequest(c, "missing_client_name", "Nome obrigatório.")

	case httperr.IsBusiness(err, "missing_client_phone"):
		httperr.BadRequest(c, "missing_client_phone", "Telefone obrigatório.")

	default:
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
	}
}
