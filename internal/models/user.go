// Package models содержит доменные структуры сайта учебного центра:
// пользователей, отзывы, обращения, заявки на брошюры и курсы каталога.
package models

// User представляет учётную запись администратора сайта.
type User struct {
	ID           string `json:"id"`       // Уникальный непрозрачный идентификатор
	Username     string `json:"username"` // Имя пользователя
	PasswordHash string `json:"-"`        // bcrypt-хэш пароля, наружу не отдаётся
}

// NewUser входные данные для создания пользователя.
type NewUser struct {
	Username     string
	PasswordHash string
}
