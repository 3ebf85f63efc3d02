package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/pkg/auth"
	"github.com/salvadodental/booking-api/pkg/errors"
)

type fakeProfileRepo struct {
	byEmail map[string]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byEmail: make(map[string]*model.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *model.Profile) error {
	if _, exists := r.byEmail[p.Email]; exists {
		return errors.Validation("email already registered", nil)
	}
	r.byEmail[p.Email] = p
	return nil
}

func (r *fakeProfileRepo) Get(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	for _, p := range r.byEmail {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.NotFound("profile", nil)
}

func (r *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	p, ok := r.byEmail[email]
	if !ok {
		return nil, errors.NotFound("profile", nil)
	}
	return p, nil
}

func (r *fakeProfileRepo) ListByRole(_ context.Context, _ model.Role) ([]*model.Profile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) ListByIDs(_ context.Context, _ []uuid.UUID) ([]*model.Profile, error) {
	return nil, nil
}

func newTestService() (*Service, *fakeProfileRepo) {
	repo := newFakeProfileRepo()
	return NewService(repo, auth.NewJWTService("test-secret", 1)), repo
}

func registerReq() *model.RegisterRequest {
	return &model.RegisterRequest{
		FirstName:       "Ana",
		LastName:        "Morales",
		Email:           "ana@example.com",
		Password:        "hunter2hunter2",
		ConfirmPassword: "hunter2hunter2",
	}
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, model.RoleClient, resp.Profile.Role)
	assert.NotEqual(t, "hunter2hunter2", repo.byEmail["ana@example.com"].PasswordHash)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, _ := newTestService()

	req := registerReq()
	req.ConfirmPassword = "something-else"
	_, err := svc.Register(context.Background(), req)
	assert.True(t, errors.IsValidation(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq())
	assert.True(t, errors.IsValidation(err))
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}
