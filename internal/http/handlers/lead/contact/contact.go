// Package contact реализует HTTP-обработчик формы обратной связи.
//
// Обращение сохраняется в хранилище и добавляется строкой во вкладку Contacts таблицы.
// Подробности ошибок пишутся в лог, клиент получает только общее сообщение.
package contact

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
	"github.com/magabrotheeeer/institute-api/internal/services/leads"
	"github.com/magabrotheeeer/institute-api/internal/sheets"
)

// Service описывает прием обращения.
type Service interface {
	SubmitContact(ctx context.Context, in models.NewContact) (models.Contact, error)
}

// Handler обрабатывает POST /api/contact.
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
// @Summary Форма обратной связи
// @Description Сохраняет обращение и добавляет его во вкладку Contacts. Телефон необязателен.
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body models.NewContact true "Обращение"
// @Success 201 {object} response.Message "Contact information submitted successfully."
// @Failure 400 {object} response.Message "Missing required fields"
// @Failure 500 {object} response.Message "Failed to record contact submission."
// @Router /api/contact [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lead.contact"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.NewContact
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

	contact, err := h.service.SubmitContact(r.Context(), req)
	switch {
	case errors.Is(err, sheets.ErrSheetNotFound):
		log.Error("contacts sheet is missing", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "Server configuration error: Sheet not found.")
		return
	case errors.Is(err, leads.ErrContactNotSaved):
		log.Error("failed to save contact", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "Failed to process contact data")
		return
	case err != nil:
		log.Error("failed to append contact", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "Failed to record contact submission.")
		return
	}

	log.Info("contact submitted", slog.String("id", contact.ID))
	response.JSON(w, r, http.StatusCreated, response.Msg("Contact information submitted successfully."))
}
