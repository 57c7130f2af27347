package contact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/institute-api/internal/models"
	"github.com/magabrotheeeer/institute-api/internal/services/leads"
	"github.com/magabrotheeeer/institute-api/internal/sheets"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SubmitContact(ctx context.Context, in models.NewContact) (models.Contact, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Contact), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestContactHandler(t *testing.T) {
	full := models.NewContact{Name: "Ann", Email: "ann@example.com", Phone: "+1 555", Service: "Training", Message: "Hi"}
	noPhone := models.NewContact{Name: "Ann", Email: "ann@example.com", Service: "Training", Message: "Hi"}
	missing := `{"message":"Missing required fields"}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "full submission",
			body: `{"name":"Ann","email":"ann@example.com","phone":"+1 555","service":"Training","message":"Hi"}`,
			setupMock: func(m *MockService) {
				m.On("SubmitContact", mock.Anything, full).Return(models.Contact{ID: "c1"}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"Contact information submitted successfully."}`,
		},
		{
			name: "phone omitted",
			body: `{"name":"Ann","email":"ann@example.com","service":"Training","message":"Hi"}`,
			setupMock: func(m *MockService) {
				m.On("SubmitContact", mock.Anything, noPhone).Return(models.Contact{ID: "c2"}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"Contact information submitted successfully."}`,
		},
		{
			name:           "missing message",
			body:           `{"name":"Ann","email":"ann@example.com","service":"Training"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   missing,
		},
		{
			name:           "empty service",
			body:           `{"name":"Ann","email":"ann@example.com","service":"","message":"Hi"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   missing,
		},
		{
			name:           "not json",
			body:           `name=Ann`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   missing,
		},
		{
			name: "sheet missing",
			body: `{"name":"Ann","email":"ann@example.com","service":"Training","message":"Hi"}`,
			setupMock: func(m *MockService) {
				m.On("SubmitContact", mock.Anything, noPhone).
					Return(models.Contact{}, fmt.Errorf("wrap: %w", sheets.ErrSheetNotFound)).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Server configuration error: Sheet not found."}`,
		},
		{
			name: "append failure",
			body: `{"name":"Ann","email":"ann@example.com","service":"Training","message":"Hi"}`,
			setupMock: func(m *MockService) {
				m.On("SubmitContact", mock.Anything, noPhone).
					Return(models.Contact{}, errors.New("googleapi: Error 403: forbidden")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Failed to record contact submission."}`,
		},
		{
			name: "local store failure",
			body: `{"name":"Ann","email":"ann@example.com","service":"Training","message":"Hi"}`,
			setupMock: func(m *MockService) {
				m.On("SubmitContact", mock.Anything, noPhone).
					Return(models.Contact{}, fmt.Errorf("x: %w", leads.ErrContactNotSaved)).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Failed to process contact data"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			svc.AssertExpectations(t)
			if tt.setupMock == nil {
				svc.AssertNotCalled(t, "SubmitContact", mock.Anything, mock.Anything)
			}
		})
	}
}
