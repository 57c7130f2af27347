package models

import "time"

// Review представляет отзыв, оставленный посетителем сайта.
type Review struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	// Seq порядковый номер вставки, разрешает равенство CreatedAt при сортировке.
	Seq int64 `json:"-"`
}

// NewReview используется для приёма отзыва из JSON-запроса.
// Неизвестные поля отклоняются на этапе декодирования.
type NewReview struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Text     string `json:"text" validate:"required,min=10"`
}
