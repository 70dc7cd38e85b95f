package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/roi-admin-api/internal/application/dto"
	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/repository"
	"github.com/jhoicas/roi-admin-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase emite tokens de acceso a partir de credenciales.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario o email más password, genera JWT con los roles y retorna token + usuario.
// Credenciales desconocidas e incorrectas devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.TokenRequest) (*dto.TokenResponse, error) {
	login := strings.TrimSpace(in.Login)
	if login == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Access:    token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Roles:    roles,
		},
	}, nil
}
