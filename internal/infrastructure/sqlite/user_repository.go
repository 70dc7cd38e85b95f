package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre SQLite.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo usuario y asigna ID.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, active, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.Active, toMillis(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	u.ID = id
	return nil
}

// GetByID obtiene un usuario con sus roles. nil, nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT id, username, email, password_hash, active, created_at FROM users WHERE id = ?`, id)
}

// FindByLogin busca por username o email.
func (r *UserRepo) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT id, username, email, password_hash, active, created_at FROM users WHERE username = ? OR email = lower(?)`, login, login)
}

func (r *UserRepo) getOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var (
		u         entity.User
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Active, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	roles, err := r.roles(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return &u, nil
}

func (r *UserRepo) roles(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.slug FROM user_roles ur JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = ? ORDER BY r.slug`, userID)
	if err != nil {
		return nil, fmt.Errorf("user roles: %w", err)
	}
	defer rows.Close()
	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}

// SetRoles reemplaza los roles del usuario. Slugs desconocidos devuelven domain.ErrInvalidInput.
func (r *UserRepo) SetRoles(ctx context.Context, userID int64, slugs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear user roles: %w", err)
	}
	for _, slug := range slugs {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO user_roles (user_id, role_id)
			SELECT ?, id FROM roles WHERE slug = ?`, userID, slug)
		if err != nil {
			return fmt.Errorf("assign role %s: %w", slug, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: rol %q no existe", domain.ErrInvalidInput, slug)
		}
	}
	return tx.Commit()
}

// RoleRepo implementación del puerto RoleRepository sobre SQLite.
type RoleRepo struct {
	db *sql.DB
}

// NewRoleRepository construye el adaptador de roles.
func NewRoleRepository(db *sql.DB) *RoleRepo {
	return &RoleRepo{db: db}
}

// Upsert crea el rol o actualiza nombre y descripción por slug.
func (r *RoleRepo) Upsert(ctx context.Context, role *entity.Role) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO roles (name, slug, description) VALUES (?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET name = excluded.name, description = excluded.description
		RETURNING id`,
		role.Name, role.Slug, role.Description,
	).Scan(&role.ID)
	if err != nil {
		return fmt.Errorf("upsert role: %w", err)
	}
	return nil
}

// List lista los roles por nombre.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug, description FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Slug, &role.Description); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}
