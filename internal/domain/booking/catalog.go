package booking

import "time"

// ===============================
// Catálogo fixo de serviços
// ===============================

type ServiceCode string

const (
	ServiceHaircut ServiceCode = "haircut"
	ServiceBeard   ServiceCode = "beard"
	ServiceCombo   ServiceCode = "combo"
	ServiceVIP     ServiceCode = "vip"
)

type Service struct {
	Code        ServiceCode `json:"code"`
	Name        string      `json:"name"`
	Price       float64     `json:"price"`
	DurationMin int         `json:"duration_min"`
	Description string      `json:"description"`
}

var services = []Service{
	{
		Code:        ServiceHaircut,
		Name:        "Corte de Cabelo",
		Price:       50,
		DurationMin: 40,
		Description: "Corte moderno, clássico ou degradê com acabamento premium.",
	},
	{
		Code:        ServiceBeard,
		Name:        "Barba Profissional",
		Price:       35,
		DurationMin: 30,
		Description: "Design de barba com toalha quente e produtos de alta qualidade.",
	},
	{
		Code:        ServiceCombo,
		Name:        "Combo (Cabelo + Barba)",
		Price:       75,
		DurationMin: 70,
		Description: "O pacote clássico: Cabelo e Barba para renovar seu visual.",
	},
	{
		Code:        ServiceVIP,
		Name:        "Tratamento VIP (Corte + Barba + Relaxamento)",
		Price:       110,
		DurationMin: 100,
		Description: "Experiência completa com massagem capilar e hidratação.",
	},
}

func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

func ServiceByCode(code ServiceCode) (Service, bool) {
	for _, s := range services {
		if s.Code == code {
			return s, true
		}
	}
	return Service{}, false
}

// ===============================
// Grade fixa de horários
// ===============================

var timeSlots = []string{
	"09:00", "10:00", "11:00", "12:00", "13:00", "14:00",
	"15:00", "16:00", "17:00", "18:00", "19:00",
}

// DaysToShow limita a janela de agendamento a partir de hoje.
const DaysToShow = 7

const DateLayout = "2006-01-02"

func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

func IsValidSlot(slot string) bool {
	for _, t := range timeSlots {
		if t == slot {
			return true
		}
	}
	return false
}

// IsBookableDate aceita datas de hoje até hoje + DaysToShow - 1,
// no fuso da barbearia.
func IsBookableDate(date string, now time.Time) bool {
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	last := today.AddDate(0, 0, DaysToShow-1)

	return !d.Before(today) && !d.After(last)
}
