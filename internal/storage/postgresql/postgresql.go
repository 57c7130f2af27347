// Package postgresql реализует хранилище пользователей, отзывов и обращений на основе PostgreSQL.
// Используется вместо хранилища в памяти, если задана строка подключения.
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/institute-api/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New открывает подключение к PostgreSQL и проверяет его доступность.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// ===== USERS =====

// CreateUser вставляет пользователя с новым UUID.
func (s *Storage) CreateUser(ctx context.Context, in models.NewUser) (models.User, error) {
	const op = "storage.postgresql.CreateUser"

	user := models.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		PasswordHash: in.PasswordHash,
	}
	query := `INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`
	if _, err := s.DB.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// GetUser возвращает пользователя по ID или nil, если его нет.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.postgresql.GetUser"

	query := `SELECT id, username, password_hash FROM users WHERE id = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, id), op)
}

// GetUserByUsername возвращает самого раннего пользователя с таким именем или nil.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.postgresql.GetUserByUsername"

	query := `SELECT id, username, password_hash FROM users WHERE username = $1 ORDER BY seq LIMIT 1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// ===== REVIEWS =====

// CreateReview вставляет отзыв, время создания и порядковый номер выставляет база.
func (s *Storage) CreateReview(ctx context.Context, in models.NewReview) (models.Review, error) {
	const op = "storage.postgresql.CreateReview"

	review := models.Review{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Position: in.Position,
		Rating:   in.Rating,
		Text:     in.Text,
	}
	query := `INSERT INTO reviews (id, name, position, rating, text)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING created_at, seq`
	err := s.DB.QueryRowContext(ctx, query,
		review.ID, review.Name, review.Position, review.Rating, review.Text,
	).Scan(&review.CreatedAt, &review.Seq)
	if err != nil {
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}
	return review, nil
}

// GetAllReviews возвращает все отзывы от новых к старым.
func (s *Storage) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	const op = "storage.postgresql.GetAllReviews"

	query := `SELECT id, name, position, rating, text, created_at, seq
			  FROM reviews ORDER BY created_at DESC, seq DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]models.Review, 0)
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.Name, &r.Position, &r.Rating, &r.Text, &r.CreatedAt, &r.Seq); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ===== CONTACTS =====

// CreateContact вставляет обращение; пустой телефон записывается как NULL.
func (s *Storage) CreateContact(ctx context.Context, in models.NewContact) (models.Contact, error) {
	const op = "storage.postgresql.CreateContact"

	contact := models.Contact{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Email:   in.Email,
		Service: in.Service,
		Message: in.Message,
	}
	if in.Phone != "" {
		phone := in.Phone
		contact.Phone = &phone
	}

	query := `INSERT INTO contacts (id, name, email, phone, service, message)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING created_at`
	err := s.DB.QueryRowContext(ctx, query,
		contact.ID, contact.Name, contact.Email, contact.Phone, contact.Service, contact.Message,
	).Scan(&contact.CreatedAt)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%s: %w", op, err)
	}
	return contact, nil
}

// GetAllContacts возвращает все обращения от новых к старым.
func (s *Storage) GetAllContacts(ctx context.Context) ([]models.Contact, error) {
	const op = "storage.postgresql.GetAllContacts"

	query := `SELECT id, name, email, phone, service, message, created_at
			  FROM contacts ORDER BY created_at DESC, seq DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]models.Contact, 0)
	for rows.Next() {
		var c models.Contact
		var phone sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &phone, &c.Service, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if phone.Valid {
			c.Phone = &phone.String
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
