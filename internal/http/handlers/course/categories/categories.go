package categories

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/institute-api/internal/http/response"
)

// Service описывает получение списка категорий.
type Service interface {
	Categories() []string
}

// Handler обрабатывает GET /api/courses/categories.
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
// @Summary Категории курсов
// @Tags Courses
// @Produce json
// @Success 200 {array} string
// @Router /api/courses/categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.service.Categories())
}
