// Package list реализует HTTP-обработчик выдачи всех отзывов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/institute-api/internal/http/response"
	"github.com/magabrotheeeer/institute-api/internal/lib/sl"
	"github.com/magabrotheeeer/institute-api/internal/models"
)

// Service описывает получение списка отзывов.
type Service interface {
	List(ctx context.Context) ([]models.Review, error)
}

// Handler обрабатывает GET /api/reviews.
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
// @Summary Список отзывов
// @Description Возвращает все отзывы, новые первыми.
// @Tags Reviews
// @Produce json
// @Success 200 {array} models.Review
// @Failure 500 {object} response.Message "Failed to fetch reviews"
// @Router /api/reviews [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	reviews, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to fetch reviews", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	log.Debug("reviews listed", slog.Int("count", len(reviews)))
	response.JSON(w, r, http.StatusOK, reviews)
}
