package dto

type AppointmentListDTO struct {
	ID          string  `json:"id"`
	Time        string  `json:"time"`
	Status      string  `json:"status"`
	ClientName  string  `json:"client_name"`
	ClientPhone string  `json:"client_phone"`
	Service     string  `json:"service"`
	ServiceName string  `json:"service_name"`
	Price       float64 `json:"price"`
}
