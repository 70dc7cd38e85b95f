package entity

import "time"

// User representa un usuario del back-office. Roles contiene los slugs asignados.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // bcrypt hash
	Active       bool
	Roles        []string
	CreatedAt    time.Time
}

// Role rol del sistema identificado por slug (admin, resp_adm_contable, resp_ti).
type Role struct {
	ID          int64
	Name        string
	Slug        string
	Description string
}
