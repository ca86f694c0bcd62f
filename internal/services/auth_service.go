package services

import (
	"context"
	"errors"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
)

// AuthService authenticates panel admins against the backend
type AuthService struct {
	backend Backend
}

// NewAuthService creates an auth service
func NewAuthService(backend Backend) *AuthService {
	return &AuthService{backend: backend}
}

// Login exchanges CPF and password for an access token. The CPF travels as
// digits only.
func (s *AuthService) Login(ctx context.Context, cpf, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := s.backend.Post(ctx, "/auth/login", models.LoginRequest{
		CPF:      utils.OnlyDigits(cpf),
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, errors.New("login response carried no access token")
	}
	return &resp, nil
}
