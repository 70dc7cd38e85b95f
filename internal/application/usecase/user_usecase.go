package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/roi-admin-api/internal/application/dto"
	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/internal/domain/repository"
)

// CreateUserInput datos de alta de un usuario con sus roles.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create hashea la contraseña con bcrypt, persiste el usuario y le asigna roles.
func (uc *UserUseCase) Create(ctx context.Context, in CreateUserInput) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: usuario, email y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	if len(in.Roles) > 0 {
		if err := uc.repo.SetRoles(ctx, user.ID, in.Roles); err != nil {
			return nil, err
		}
		user.Roles = in.Roles
	}
	return ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID. domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// CurrentRoles devuelve los roles vigentes del usuario según la BD.
// domain.ErrUserNotFound si ya no existe; domain.ErrForbidden si está inactivo.
func (uc *UserUseCase) CurrentRoles(ctx context.Context, id int64) ([]string, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	return user.Roles, nil
}

// ToUserResponse convierte la entidad a su salida HTTP (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &dto.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    roles,
	}
}
