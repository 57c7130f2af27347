package models

import "time"

// Contact представляет обращение из формы обратной связи.
// Phone равен nil, если телефон не был указан.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewContact используется для приёма обращения из JSON-запроса.
type NewContact struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service" validate:"required"`
	Message string `json:"message" validate:"required"`
}
