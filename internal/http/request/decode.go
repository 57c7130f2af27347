// Package request декодирует тела JSON-запросов в типизированные структуры.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes ограничивает размер тела формы.
const maxBodyBytes = 1 << 20

// ErrEmptyBody тело запроса пустое.
var ErrEmptyBody = errors.New("empty request body")

// DecodeJSON читает ровно один JSON-объект в v. Неизвестные поля и данные после объекта считаются ошибкой.
func DecodeJSON(r *http.Request, v any) error {
	const op = "request.DecodeJSON"

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: %w", op, ErrEmptyBody)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if dec.More() {
		return fmt.Errorf("%s: unexpected data after JSON object", op)
	}
	return nil
}
