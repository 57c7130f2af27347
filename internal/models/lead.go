package models

import "time"

// BrochureRequest заявка на скачивание брошюры курса.
type BrochureRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
	Course string `json:"course" validate:"required"`
}

// Виды лидов, попадающих в таблицу и в очередь событий.
const (
	LeadKindContact  = "contact"
	LeadKindBrochure = "brochure"
)

// LeadEvent сообщение о новом лиде, публикуемое в RabbitMQ.
// Subject содержит выбранную услугу для обращения или курс для брошюры.
type LeadEvent struct {
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}
