package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cobranca-api/dtos"
	"cobranca-api/models"
	"cobranca-api/utils"
)

func TestLogin(t *testing.T) {
	db := newTestDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username: "maria",
		Password: string(hash),
		Name:     "Maria Souza",
		Role:     models.RoleAdmin,
	}
	require.NoError(t, db.Create(&user).Error)

	service := NewAuthService()

	t.Run("valid credentials issue a token", func(t *testing.T) {
		response, err := service.Login(dtos.LoginInput{Username: "maria", Password: "secret123"})
		require.NoError(t, err)

		assert.Equal(t, "Maria Souza", response.Name)
		assert.Equal(t, models.RoleAdmin, response.Role)

		claims, err := utils.ParseToken(response.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, models.RoleAdmin, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(dtos.LoginInput{Username: "maria", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.Login(dtos.LoginInput{Username: "ghost", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
