// Package login реализует HTTP-обработчик входа администратора.
//
// Проверяет учетные данные через сервис авторизации и при успехе возвращает JWT,
// которым подписываются запросы к /api/admin/*.
package login

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
	"github.com/magabrotheeeer/institute-api/internal/services/auth"
)

// Request — структура входных данных для авторизации.
type Request struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
}

// Response содержит выданный токен.
type Response struct {
	Token string `json:"token"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Handler обрабатывает POST /api/admin/login.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход администратора
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} Response
// @Failure 400 {object} response.Message "Invalid request body"
// @Failure 401 {object} response.Message "Invalid credentials"
// @Failure 500 {object} response.Message "Internal error"
// @Router /api/admin/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := request.DecodeJSON(r, &req); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		response.Error(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", slog.String("details", response.ValidationDetails(err)))
		response.Error(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("invalid credentials", slog.String("username", req.Username))
			response.Error(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error("login failed", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "Internal error")
		return
	}

	log.Info("admin logged in", slog.String("username", req.Username))
	response.JSON(w, r, http.StatusOK, Response{Token: token})
}
