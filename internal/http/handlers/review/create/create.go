// Package create реализует HTTP-обработчик публикации отзыва.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/institute-api/internal/http/request"
	"github.com/magabrotheeeer/institute-api/internal/http/response"
	"github.com/magabrotheeeer/institute-api/internal/lib/sl"
	"github.com/magabrotheeeer/institute-api/internal/models"
)

const msgInvalidReview = "Invalid review data"

// Service описывает создание отзыва.
type Service interface {
	Create(ctx context.Context, in models.NewReview) (models.Review, error)
}

// Handler обрабатывает POST /api/reviews.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание отзыва
// @Description Принимает отзыв, присваивает id и время создания.
// @Tags Reviews
// @Accept json
// @Produce json
// @Param request body models.NewReview true "Отзыв"
// @Success 201 {object} models.Review
// @Failure 400 {object} response.Message "Invalid review data"
// @Failure 500 {object} response.Message "Failed to create review"
// @Router /api/reviews [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.NewReview
	if err := request.DecodeJSON(r, &req); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		response.Error(w, r, http.StatusBadRequest, msgInvalidReview)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", slog.String("details", response.ValidationDetails(err)))
		response.Error(w, r, http.StatusBadRequest, msgInvalidReview)
		return
	}

	review, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create review", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "Failed to create review")
		return
	}

	log.Info("review created", slog.String("id", review.ID))
	response.JSON(w, r, http.StatusCreated, review)
}
