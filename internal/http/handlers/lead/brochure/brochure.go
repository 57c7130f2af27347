// Package brochure реализует HTTP-обработчик заявки на скачивание брошюры курса.
package brochure

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/institute-api/internal/http/request"
	"github.com/magabrotheeeer/institute-api/internal/http/response"
	"github.com/magabrotheeeer/institute-api/internal/lib/sl"
	"github.com/magabrotheeeer/institute-api/internal/models"
	"github.com/magabrotheeeer/institute-api/internal/sheets"
)

// Service описывает прием заявки на брошюру.
type Service interface {
	SubmitBrochure(ctx context.Context, in models.BrochureRequest) error
}

// Handler обрабатывает POST /api/submit-brochure.
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
// @Summary Заявка на брошюру
// @Description Добавляет лид во вкладку Leads.
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body models.BrochureRequest true "Заявка"
// @Success 200 {object} response.Message "Lead saved successfully"
// @Failure 400 {object} response.Message "Missing required fields"
// @Failure 500 {object} response.Message "Failed to record lead."
// @Router /api/submit-brochure [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lead.brochure"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.BrochureRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		response.Error(w, r, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", slog.String("details", response.ValidationDetails(err)))
		response.Error(w, r, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := h.service.SubmitBrochure(r.Context(), req); err != nil {
		if errors.Is(err, sheets.ErrSheetNotFound) {
			log.Error("leads sheet is missing", sl.Err(err))
			response.Error(w, r, http.StatusInternalServerError, "Server configuration error: Sheet not found.")
			return
		}
		log.Error("failed to append lead", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "Failed to record lead.")
		return
	}

	log.Info("brochure lead saved", slog.String("course", req.Course))
	response.JSON(w, r, http.StatusOK, response.Msg("Lead saved successfully"))
}
