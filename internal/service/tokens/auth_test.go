package tokens

import (
	"testing"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	key := []byte("test-secret")
	userID := uuid.New()

	token, err := GenerateAccessToken(userID, "admin@example.com", domain.RoleAdmin, time.Hour, key)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, key)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, id)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.AppRole())
}

func TestValidateAccessTokenErrors(t *testing.T) {
	key := []byte("test-secret")

	expired, err := GenerateAccessToken(uuid.New(), "a@example.com", domain.RoleMember, -time.Minute, key)
	require.NoError(t, err)
	_, err = ValidateAccessToken(expired, key)
	assert.ErrorIs(t, err, ErrTokenExpired)

	valid, err := GenerateAccessToken(uuid.New(), "a@example.com", domain.RoleMember, time.Minute, key)
	require.NoError(t, err)
	_, err = ValidateAccessToken(valid, []byte("other-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateAccessToken("not-a-token", key)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAppRoleIgnoresDatabaseRole(t *testing.T) {
	claims := AccessClaims{Role: "admin"}
	assert.Equal(t, domain.RoleMember, claims.AppRole())
}
