// Package response содержит вспомогательные функции для формирования JSON-ответов
// HTTP-обработчиков. Ошибки и подтверждения отдаются в едином виде {"message": "..."}.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

// Message — тело ответа с текстовым сообщением. Используется и в аннотациях Swagger.
type Message struct {
	Message string `json:"message" example:"Missing required fields"`
}

// Msg возвращает Message с переданным текстом.
func Msg(msg string) Message {
	return Message{Message: msg}
}

// JSON отправляет v с указанным статусом.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// Error отправляет {"message": msg} с указанным статусом.
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, Msg(msg))
}

// ValidationDetails превращает ошибки валидации в строку для логов.
// Клиенту эти подробности не отдаются.
func ValidationDetails(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	var msgs []string
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", e.Field()))
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("field %s is out of range", e.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s is too short", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", e.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
