package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Almacen-api/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Delete(string) error                   { return nil }

func newAuth() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "almacen-api-test",
	})
	return uc, repo
}

func TestRegisterUser_HasheaYAsignaRolPorDefecto(t *testing.T) {
	uc, repo := newAuth()

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Name:     "María",
		Email:    "maria@almacen.test",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBodeguero, out.Role, "rol por defecto: bodeguero")
	assert.Equal(t, "active", out.Status)

	stored, err := repo.FindByEmail("maria@almacen.test")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash, "el password nunca se guarda plano")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@b.test", Password: "x12345"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "a@b.test", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "a@b.test",
		Password: "x12345",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_TokenIncluyeRol(t *testing.T) {
	uc, _ := newAuth()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "admin@almacen.test",
		Password: "secreta123",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "admin@almacen.test", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := pkgjwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@b.test", Password: "correcta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "a@b.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@b.test", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo := newAuth()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@b.test", Password: "secreta123"})
	require.NoError(t, err)

	stored, _ := repo.FindByEmail("a@b.test")
	stored.Status = "inactive"
	require.NoError(t, repo.Update(stored))

	_, err = uc.Login(dto.LoginRequest{Email: "a@b.test", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
