// Package auth содержит логику доступа администратора: заведение учетной записи, вход и проверку JWT.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/institute-api/internal/lib/jwt"
	"github.com/magabrotheeeer/institute-api/internal/lib/password"
	"github.com/magabrotheeeer/institute-api/internal/models"
)

// RoleAdmin роль, которую получает администратор в токене.
const RoleAdmin = "admin"

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя.
	CreateUser(ctx context.Context, in models.NewUser) (models.User, error)

	// GetUserByUsername возвращает пользователя по имени или nil, если его нет.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service отвечает за заведение администратора, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// EnsureAdmin создает администратора, если пользователя с таким именем еще нет.
// Возвращает true, если запись была создана.
func (s *Service) EnsureAdmin(ctx context.Context, username, rawPassword string) (bool, error) {
	const op = "services.auth.EnsureAdmin"

	existing, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if existing != nil {
		return false, nil
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.users.CreateUser(ctx, models.NewUser{Username: username, PasswordHash: hashed}); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Login проверяет пароль и выдает JWT администратора.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.Username, RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ValidateToken проверяет JWT и возвращает его claims.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	const op = "services.auth.ValidateToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("%s: role %q is not allowed", op, claims.Role)
	}
	return claims, nil
}
