// Package list реализует HTTP-обработчик каталога курсов.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/institute-api/internal/http/response"
	"github.com/magabrotheeeer/institute-api/internal/models"
)

// Service описывает выборку курсов.
type Service interface {
	Courses(category string) []models.Course
}

// Handler обрабатывает GET /api/courses.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог курсов
// @Description Возвращает курсы; параметр category фильтрует по точному совпадению.
// @Tags Courses
// @Produce json
// @Param category query string false "Категория"
// @Success 200 {array} models.Course
// @Router /api/courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.list"

	category := r.URL.Query().Get("category")
	courses := h.service.Courses(category)

	h.log.Debug("courses listed",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("category", category),
		slog.Int("count", len(courses)),
	)
	response.JSON(w, r, http.StatusOK, courses)
}
