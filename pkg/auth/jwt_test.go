package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salvadodental/booking-api/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 1)

	profile := &model.Profile{
		ID:    uuid.New(),
		Email: "ana@example.com",
		Role:  model.RoleClient,
	}

	token, err := svc.GenerateAccessToken(profile)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, profile.ID, claims.UserID)
	assert.Equal(t, profile.Email, claims.Email)
	assert.Equal(t, model.RoleClient, claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 1)
	verifier := NewJWTService("secret-b", 1)

	token, err := issuer.GenerateAccessToken(&model.Profile{
		ID:    uuid.New(),
		Email: "ana@example.com",
		Role:  model.RoleClient,
	})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
