package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/barberflow/barberflow-server/internal/domain/booking"
	"github.com/barberflow/barberflow-server/internal/httperr"
	"github.com/barberflow/barberflow-server/internal/httpresp"
	"github.com/barberflow/barberflow-server/internal/insight"
	ucbooking "github.com/barberflow/barberflow-server/internal/usecase/booking"
)

// ======================================================
// HANDLER (painel de gerência)
// ======================================================

type AppointmentHandler struct {
	listUC     *ucbooking.ListAppointmentsByDate
	completeUC *ucbooking.CompleteAppointment
	cancelUC   *ucbooking.CancelAppointment
	store      ucbooking.Store
	insight    *insight.Provider
	loc        *time.Location
}

func NewAppointmentHandler(
	listUC *ucbooking.ListAppointmentsByDate,
	completeUC *ucbooking.CompleteAppointment,
	cancelUC *ucbooking.CancelAppointment,
	store ucbooking.Store,
	insightProvider *insight.Provider,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		listUC:     listUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
		store:      store,
		insight:    insightProvider,
		loc:        loc,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = time.Now().In(h.loc).Format(domain.DateLayout)
	}

	if _, err := time.ParseInLocation(domain.DateLayout, dateStr, h.loc); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	httpresp.List(c, h.listUC.Execute(c.Request.Context(), dateStr))
}

// ======================================================
// COMPLETE / CANCEL
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id := c.Param("id")

	ap, err := h.completeUC.Execute(c.Request.Context(), id)
	if err != nil {
		mapStatusErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id := c.Param("id")

	ap, err := h.cancelUC.Execute(c.Request.Context(), id)
	if err != nil {
		mapStatusErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func mapStatusErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")

	case httperr.IsBusiness(err, "invalid_state"),
		httperr.IsBusiness(err, "invalid_transition"):
		httperr.BadRequest(c, "invalid_state", "Agendamento não permite essa transição.")

	default:
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
	}
}

// ======================================================
// INSIGHT (Dica do Mestre)
// ======================================================

func (h *AppointmentHandler) Insight(c *gin.Context) {
	today := time.Now().In(h.loc).Format(domain.DateLayout)

	count := 0
	for _, ap := range h.store.List(c.Request.Context()) {
		if ap.Date == today && domain.Status(ap.Status) != domain.StatusCanceled {
			count++
		}
	}

	text := h.insight.DailyInsight(c.Request.Context(), count)

	c.JSON(http.StatusOK, gin.H{
		"date":    today,
		"count":   count,
		"insight": text,
	})
}
