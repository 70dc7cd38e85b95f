package repository

import (
	"context"

	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// FindByLogin busca por username o email.
	FindByLogin(ctx context.Context, login string) (*entity.User, error)
	// SetRoles reemplaza los roles del usuario por los slugs dados.
	SetRoles(ctx context.Context, userID int64, slugs []string) error
}

// RoleRepository define el puerto de persistencia para Role.
type RoleRepository interface {
	Upsert(ctx context.Context, role *entity.Role) error
	List(ctx context.Context) ([]*entity.Role, error)
}
