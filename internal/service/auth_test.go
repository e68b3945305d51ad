package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return domain.User{}, repository.ErrUserEmailExists
	}

	user.ID = uint(len(r.byEmail) + 1)
	r.byEmail[user.Email] = user

	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	repo := &fakeUserRepo{byEmail: make(map[string]domain.User)}
	svc := NewAuthService(repo)

	created, err := svc.Signup(context.Background(), domain.User{
		Email:    "operator@example.com",
		Password: "Sup3rSecret",
		Role:     domain.RoleOperator,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", created.Password, "password must be stored hashed")

	user, err := svc.Login(context.Background(), "operator@example.com", "Sup3rSecret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := &fakeUserRepo{byEmail: make(map[string]domain.User)}
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{
		Email:    "operator@example.com",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "operator@example.com", "nope")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := &fakeUserRepo{byEmail: make(map[string]domain.User)}
	svc := NewAuthService(repo)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{byEmail: make(map[string]domain.User)}
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Email: "a@example.com", Password: "Sup3rSecret"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Email: "a@example.com", Password: "Sup3rSecret"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}
