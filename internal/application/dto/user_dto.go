package dto

// TokenRequest entrada para POST /api/auth/token: username o email más password.
type TokenRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// TokenResponse salida con el token de acceso.
type TokenResponse struct {
	Access    string       `json:"access"`
	ExpiresIn int          `json:"expires_in"` // segundos
	User      UserResponse `json:"user"`
}
