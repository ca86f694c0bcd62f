package services

import (
	"context"
	"strconv"

	"github.com/instituto-brotar/painel-brotar/internal/models"
)

// AdminService manages panel users
type AdminService struct {
	resource[models.Admin]
}

// NewAdminService creates an admin service
func NewAdminService(backend Backend) *AdminService {
	return &AdminService{resource: newResource[models.Admin](backend, "/admins")}
}

// ChangePassword replaces the password of admin id
func (s *AdminService) ChangePassword(ctx context.Context, id int64, newPassword string) error {
	if id <= 0 {
		return models.ErrInvalidID
	}
	return s.backend.Patch(ctx, "/admins/change-password/"+strconv.FormatInt(id, 10),
		models.ChangePasswordRequest{NewPassword: newPassword}, nil)
}
