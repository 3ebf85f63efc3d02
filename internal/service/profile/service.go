package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/internal/repository"
)

type Service struct {
	repo repository.ProfileRepository
}

func NewService(repo repository.ProfileRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// ListClients returns every client profile, for the doctor's booking form.
func (s *Service) ListClients(ctx context.Context) ([]*model.Profile, error) {
	profiles, err := s.repo.ListByRole(ctx, model.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return profiles, nil
}
