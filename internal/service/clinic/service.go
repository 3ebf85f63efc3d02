package clinic

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/internal/repository"
)

const (
	configCacheKey = "clinic_config"
	configCacheTTL = 30 * time.Second
)

// Service reads and mutates the singleton clinic config. Reads are cached
// briefly since every booking attempt consults the config; writes invalidate.
type Service struct {
	repo  repository.ClinicConfigRepository
	cache *cache.Cache
}

func NewService(repo repository.ClinicConfigRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(configCacheTTL, 2*configCacheTTL),
	}
}

func (s *Service) GetConfig(ctx context.Context) (*model.ClinicConfig, error) {
	if cached, found := s.cache.Get(configCacheKey); found {
		if config, ok := cached.(*model.ClinicConfig); ok {
			return config, nil
		}
	}

	config, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic config: %w", err)
	}

	s.cache.Set(configCacheKey, config, cache.DefaultExpiration)
	return config, nil
}

func (s *Service) UpdateConfig(ctx context.Context, req *model.UpdateClinicConfigRequest) (*model.ClinicConfig, error) {
	config, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic config: %w", err)
	}

	if req.IsOpen != nil {
		config.IsOpen = *req.IsOpen
	}
	if req.WorkingHours != nil {
		config.WorkingHours = *req.WorkingHours
	}

	if err := s.repo.Update(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to update clinic config: %w", err)
	}

	s.cache.Delete(configCacheKey)
	return config, nil
}

// ToggleOpen flips the booking gate.
func (s *Service) ToggleOpen(ctx context.Context) (*model.ClinicConfig, error) {
	config, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic config: %w", err)
	}

	config.IsOpen = !config.IsOpen
	if err := s.repo.Update(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to toggle clinic status: %w", err)
	}

	s.cache.Delete(configCacheKey)
	return config, nil
}
