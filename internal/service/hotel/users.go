package hotel

import (
	"context"
	"fmt"
	"strings"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/service/billing"
	"github.com/mamadbah2/hotel-admin/pkg/clients/hotelapi"
)

// CreateUser creates an account, uploading image when given.
func (s *Service) CreateUser(ctx context.Context, u models.User, image *hotelapi.Upload) (*models.User, error) {
	if err := validateUser(u, true); err != nil {
		return nil, err
	}
	created, err := s.api.Users.CreateWithImage(ctx, u, image)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	created.Password = ""
	return created, nil
}

// UpdateUser updates an account. An empty password leaves it unchanged.
func (s *Service) UpdateUser(ctx context.Context, id int64, u models.User, image *hotelapi.Upload) (*models.User, error) {
	if err := validateUser(u, false); err != nil {
		return nil, err
	}
	updated, err := s.api.Users.UpdateWithImage(ctx, id, u, image)
	if err != nil {
		return nil, notFound(fmt.Errorf("update user %d: %w", id, err))
	}
	updated.Password = ""
	return updated, nil
}

// DeleteUser removes an account.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.api.Users.Delete(ctx, id); err != nil {
		return notFound(fmt.Errorf("delete user %d: %w", id, err))
	}
	return nil
}

func validateUser(u models.User, creating bool) error {
	var problems []string
	if strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "" {
		problems = append(problems, "prénom et nom requis")
	}
	if u.ProfileID == 0 {
		problems = append(problems, "profil requis")
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		problems = append(problems, "email invalide")
	}
	if creating && u.Password == "" {
		problems = append(problems, "mot de passe requis")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", billing.ErrValidation, strings.Join(problems, ", "))
	}
	return nil
}
