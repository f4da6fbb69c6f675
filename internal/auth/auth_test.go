package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descmd1/lms-backend/internal/models"
)

var testSecret = []byte("test-secret")

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(testSecret, "665f1f77bcf86cd799439011", "Ada Obi", models.RoleTutor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "665f1f77bcf86cd799439011", claims.UserID)
	assert.Equal(t, "Ada Obi", claims.Name)
	assert.Equal(t, models.RoleTutor, claims.Role)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT(testSecret, "665f1f77bcf86cd799439011", "Ada Obi", models.RoleTutor)
	require.NoError(t, err)

	_, err = ValidateJWT([]byte("other-secret"), token)
	assert.Error(t, err)
}

func TestValidateJWT_Garbage(t *testing.T) {
	_, err := ValidateJWT(testSecret, "not.a.token")
	assert.Error(t, err)
}
