package booking

import "github.com/barberflow/barberflow-server/internal/models"

// SlotAvailability descreve um horário da grade para uma data.
type SlotAvailability struct {
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
}

// IsSlotBooked informa se (date, time) já está ocupado por um agendamento
// não cancelado no snapshot. Puro e síncrono: deve ser reavaliado contra o
// snapshot mais recente a cada verificação, pois é apenas consultivo. A
// garantia real fica na checagem transacional do insert remoto.
func IsSlotBooked(appointments []models.Appointment, date string, slot string) bool {
	for _, ap := range appointments {
		if ap.Date == date && ap.Time == slot && Status(ap.Status) != StatusCanceled {
			return true
		}
	}
	return false
}

// DaySlots devolve toda a grade de horários de uma data com a flag de ocupação.
func DaySlots(appointments []models.Appointment, date string) []SlotAvailability {
	slots := make([]SlotAvailability, 0, len(timeSlots))
	for _, t := range timeSlots {
		slots = append(slots, SlotAvailability{
			Time:   t,
			Booked: IsSlotBooked(appointments, date, t),
		})
	}
	return slots
}
