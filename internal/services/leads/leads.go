// Package leads принимает обращения и заявки на брошюры и передает их в Google Sheets.
package leads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/institute-api/internal/lib/sl"
	"github.com/magabrotheeeer/institute-api/internal/metrics"
	"github.com/magabrotheeeer/institute-api/internal/models"
)

// Названия вкладок таблицы.
const (
	TabContacts = "Contacts"
	TabLeads    = "Leads"
)

// timestampLayout повторяет формат ISO 8601 с миллисекундами в UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrContactNotSaved строка уже добавлена в таблицу, но обращение не удалось сохранить локально.
var ErrContactNotSaved = errors.New("contact not saved")

// Appender добавляет строку во вкладку таблицы.
type Appender interface {
	AppendRow(ctx context.Context, tab string, fields map[string]string) error
}

// ContactRepository определяет методы хранилища обращений.
type ContactRepository interface {
	CreateContact(ctx context.Context, in models.NewContact) (models.Contact, error)
	GetAllContacts(ctx context.Context) ([]models.Contact, error)
}

// Publisher публикует события о новых лидах.
type Publisher interface {
	PublishLead(ctx context.Context, event models.LeadEvent) error
}

// Service связывает хранилище, таблицу и очередь событий.
type Service struct {
	contacts      ContactRepository
	sheet         Appender
	publisher     Publisher
	appendTimeout time.Duration
	log           *slog.Logger
	now           func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithPublisher включает публикацию событий о лидах.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithAppendTimeout ограничивает время записи строки в таблицу.
func WithAppendTimeout(d time.Duration) Option {
	return func(s *Service) { s.appendTimeout = d }
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService создает Service.
func NewService(contacts ContactRepository, sheet Appender, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		contacts: contacts,
		sheet:    sheet,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitContact добавляет обращение во вкладку Contacts и только после успешной записи
// сохраняет его в хранилище. Неудачная отправка в хранилище не попадает.
func (s *Service) SubmitContact(ctx context.Context, in models.NewContact) (models.Contact, error) {
	const op = "services.leads.SubmitContact"

	row := map[string]string{
		"Name":      in.Name,
		"Email":     in.Email,
		"Phone":     in.Phone,
		"Service":   in.Service,
		"Message":   in.Message,
		"Timestamp": s.now().UTC().Format(timestampLayout),
	}
	if err := s.appendRow(ctx, TabContacts, row); err != nil {
		metrics.LeadsSubmitted.WithLabelValues(models.LeadKindContact, metrics.OutcomeFailed).Inc()
		return models.Contact{}, fmt.Errorf("%s: %w", op, err)
	}

	contact, err := s.contacts.CreateContact(ctx, in)
	if err != nil {
		metrics.LeadsSubmitted.WithLabelValues(models.LeadKindContact, metrics.OutcomeFailed).Inc()
		return models.Contact{}, fmt.Errorf("%s: %w: %w", op, ErrContactNotSaved, err)
	}
	metrics.LeadsSubmitted.WithLabelValues(models.LeadKindContact, metrics.OutcomeOK).Inc()

	s.publish(ctx, models.LeadEvent{
		Kind:      models.LeadKindContact,
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     in.Phone,
		Subject:   contact.Service,
		CreatedAt: contact.CreatedAt,
	})
	return contact, nil
}

// SubmitBrochure добавляет заявку на брошюру во вкладку Leads.
func (s *Service) SubmitBrochure(ctx context.Context, in models.BrochureRequest) error {
	const op = "services.leads.SubmitBrochure"

	createdAt := s.now().UTC()
	row := map[string]string{
		"Name":      in.Name,
		"Email":     in.Email,
		"Phone":     in.Phone,
		"Course":    in.Course,
		"Timestamp": createdAt.Format(timestampLayout),
	}
	if err := s.appendRow(ctx, TabLeads, row); err != nil {
		metrics.LeadsSubmitted.WithLabelValues(models.LeadKindBrochure, metrics.OutcomeFailed).Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	metrics.LeadsSubmitted.WithLabelValues(models.LeadKindBrochure, metrics.OutcomeOK).Inc()

	s.publish(ctx, models.LeadEvent{
		Kind:      models.LeadKindBrochure,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Course,
		CreatedAt: createdAt,
	})
	return nil
}

// ListContacts возвращает сохраненные обращения от новых к старым.
func (s *Service) ListContacts(ctx context.Context) ([]models.Contact, error) {
	const op = "services.leads.ListContacts"

	contacts, err := s.contacts.GetAllContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return contacts, nil
}

func (s *Service) appendRow(ctx context.Context, tab string, row map[string]string) error {
	if s.appendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.appendTimeout)
		defer cancel()
	}
	return s.sheet.AppendRow(ctx, tab, row)
}

// publish отправляет событие без влияния на ответ клиенту.
func (s *Service) publish(ctx context.Context, event models.LeadEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLead(ctx, event); err != nil {
		s.log.Warn("failed to publish lead event",
			slog.String("kind", event.Kind),
			sl.Err(err),
		)
	}
}
