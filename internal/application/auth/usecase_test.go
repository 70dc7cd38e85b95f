package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/roi-admin-api/internal/application/dto"
	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(context.Context, *entity.User) error           { return nil }
func (f *fakeUserRepo) GetByID(context.Context, int64) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) SetRoles(context.Context, int64, []string) error      { return nil }
func (f *fakeUserRepo) FindByLogin(_ context.Context, login string) (*entity.User, error) {
	return f.users[login], nil
}

func newAuth(t *testing.T, active bool) *AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{ID: 7, Username: "contable", Email: "contable@roi.test", PasswordHash: string(hash), Active: active, Roles: []string{"resp_adm_contable"}}
	repo := &fakeUserRepo{users: map[string]*entity.User{"contable": u, "contable@roi.test": u}}
	return NewAuthUseCase(repo, JWTConfig{Secret: "secreto", ExpMinutes: 30, Issuer: "test"})
}

func TestLogin_IssuesTokenWithRoles(t *testing.T) {
	uc := newAuth(t, true)

	for _, login := range []string{"contable", " contable@roi.test "} {
		resp, err := uc.Login(context.Background(), dto.TokenRequest{Login: login, Password: "clave-segura"})
		require.NoError(t, err)
		assert.Equal(t, 1800, resp.ExpiresIn)
		assert.Equal(t, int64(7), resp.User.ID)

		userID, roles, err := jwt.Parse("secreto", resp.Access)
		require.NoError(t, err)
		assert.Equal(t, int64(7), userID)
		assert.Equal(t, []string{"resp_adm_contable"}, roles)
	}
}

func TestLogin_Rejections(t *testing.T) {
	uc := newAuth(t, true)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.TokenRequest{Login: "contable", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.TokenRequest{Login: "nadie", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.TokenRequest{Login: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_InactiveUserForbidden(t *testing.T) {
	uc := newAuth(t, false)

	_, err := uc.Login(context.Background(), dto.TokenRequest{Login: "contable", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
