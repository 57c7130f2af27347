// Package contacts реализует выдачу сохраненных обращений администратору.
package contacts

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/institute-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/institute-api/internal/http/response"
	"github.com/magabrotheeeer/institute-api/internal/lib/sl"
	"github.com/magabrotheeeer/institute-api/internal/models"
)

// Service описывает получение обращений.
type Service interface {
	ListContacts(ctx context.Context) ([]models.Contact, error)
}

// Handler обрабатывает GET /api/admin/contacts.
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
// @Summary Обращения
// @Description Сохраненные обращения, новые первыми. Требует токен администратора.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Contact
// @Failure 401 {object} response.Message "Unauthorized"
// @Failure 500 {object} response.Message "Failed to fetch contacts"
// @Router /api/admin/contacts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.contacts"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		response.Error(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	contacts, err := h.service.ListContacts(r.Context())
	if err != nil {
		log.Error("failed to list contacts", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "Failed to fetch contacts")
		return
	}

	log.Info("contacts listed", slog.String("username", username), slog.Int("count", len(contacts)))
	response.JSON(w, r, http.StatusOK, contacts)
}
