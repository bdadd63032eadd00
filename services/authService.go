package services

import (
	"golang.org/x/crypto/bcrypt"

	"cobranca-api/config"
	"cobranca-api/dtos"
	"cobranca-api/models"
	"cobranca-api/utils"
)

type AuthService interface {
	Login(input dtos.LoginInput) (*dtos.AuthResponse, error)
}

type authService struct{}

func NewAuthService() AuthService {
	return &authService{}
}

func (s *authService) Login(input dtos.LoginInput) (*dtos.AuthResponse, error) {
	var user models.User
	if err := config.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dtos.AuthResponse{
		Message: "Login successful",
		Token:   token,
		Name:    user.Name,
		Role:    user.Role,
	}, nil
}
