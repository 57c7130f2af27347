// Package memory реализует хранилище пользователей, отзывов и обращений в памяти процесса.
// Данные не переживают перезапуск. Хранилище создаётся явно и передаётся зависимостям,
// глобального экземпляра нет.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/institute-api/internal/models"
)

// Storage хранит записи в map по идентификатору.
// Все методы безопасны для конкурентного вызова.
type Storage struct {
	mu       sync.RWMutex
	users    map[string]userRecord
	reviews  map[string]models.Review
	contacts map[string]contactRecord
	seq      int64
	now      func() time.Time
}

type userRecord struct {
	user models.User
	seq  int64
}

type contactRecord struct {
	contact models.Contact
	seq     int64
}

// Option настраивает Storage.
type Option func(*Storage)

// WithClock подменяет источник времени, используется в тестах.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

// New создаёт пустое хранилище.
func New(opts ...Option) *Storage {
	s := &Storage{
		users:    make(map[string]userRecord),
		reviews:  make(map[string]models.Review),
		contacts: make(map[string]contactRecord),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) nextSeq() int64 {
	s.seq++
	return s.seq
}

// ===== USERS =====

// CreateUser сохраняет пользователя под новым идентификатором.
// Уникальность username не проверяется.
func (s *Storage) CreateUser(ctx context.Context, in models.NewUser) (models.User, error) {
	const op = "storage.memory.CreateUser"
	if err := ctx.Err(); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		PasswordHash: in.PasswordHash,
	}

	s.mu.Lock()
	s.users[user.ID] = userRecord{user: user, seq: s.nextSeq()}
	s.mu.Unlock()

	return user, nil
}

// GetUser возвращает пользователя по ID или nil, если его нет.
func (s *Storage) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	user := rec.user
	return &user, nil
}

// GetUserByUsername возвращает самого раннего пользователя с таким именем или nil.
func (s *Storage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		found userRecord
		ok    bool
	)
	for _, rec := range s.users {
		if rec.user.Username != username {
			continue
		}
		if !ok || rec.seq < found.seq {
			found, ok = rec, true
		}
	}
	if !ok {
		return nil, nil
	}
	user := found.user
	return &user, nil
}

// ===== REVIEWS =====

// CreateReview сохраняет отзыв, проставляя ID и время создания.
func (s *Storage) CreateReview(ctx context.Context, in models.NewReview) (models.Review, error) {
	const op = "storage.memory.CreateReview"
	if err := ctx.Err(); err != nil {
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	review := models.Review{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Position:  in.Position,
		Rating:    in.Rating,
		Text:      in.Text,
		CreatedAt: s.now(),
		Seq:       s.nextSeq(),
	}
	s.reviews[review.ID] = review

	return review, nil
}

// GetAllReviews возвращает все отзывы от новых к старым.
// При равном времени создания первым идёт отзыв, добавленный позже.
func (s *Storage) GetAllReviews(_ context.Context) ([]models.Review, error) {
	s.mu.RLock()
	result := make([]models.Review, 0, len(s.reviews))
	for _, review := range s.reviews {
		result = append(result, review)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].Seq > result[j].Seq
	})
	return result, nil
}

// ===== CONTACTS =====

// CreateContact сохраняет обращение. Пустой телефон сохраняется как nil.
func (s *Storage) CreateContact(ctx context.Context, in models.NewContact) (models.Contact, error) {
	const op = "storage.memory.CreateContact"
	if err := ctx.Err(); err != nil {
		return models.Contact{}, fmt.Errorf("%s: %w", op, err)
	}

	var phone *string
	if in.Phone != "" {
		p := in.Phone
		phone = &p
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contact := models.Contact{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     phone,
		Service:   in.Service,
		Message:   in.Message,
		CreatedAt: s.now(),
	}
	s.contacts[contact.ID] = contactRecord{contact: contact, seq: s.nextSeq()}

	return contact, nil
}

// GetAllContacts возвращает все обращения от новых к старым.
func (s *Storage) GetAllContacts(_ context.Context) ([]models.Contact, error) {
	s.mu.RLock()
	records := make([]contactRecord, 0, len(s.contacts))
	for _, rec := range s.contacts {
		records = append(records, rec)
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.contact.CreatedAt.Equal(b.contact.CreatedAt) {
			return a.contact.CreatedAt.After(b.contact.CreatedAt)
		}
		return a.seq > b.seq
	})

	result := make([]models.Contact, 0, len(records))
	for _, rec := range records {
		result = append(result, rec.contact)
	}
	return result, nil
}

// Close нужен для совместимости с другими хранилищами.
func (s *Storage) Close() error {
	return nil
}
