package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/internal/repository"
	"github.com/salvadodental/booking-api/pkg/auth"
	"github.com/salvadodental/booking-api/pkg/errors"
)

const bcryptCost = 12

type Service struct {
	profileRepo repository.ProfileRepository
	jwtService  auth.JWTService
}

func NewService(profileRepo repository.ProfileRepository, jwtService auth.JWTService) *Service {
	return &Service{
		profileRepo: profileRepo,
		jwtService:  jwtService,
	}
}

// Register creates a client profile. Self-registration never grants the
// doctor role; the practitioner account is provisioned out of band.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, errors.Validation("passwords do not match", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &model.Profile{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Role:         model.RoleClient,
		PasswordHash: string(hash),
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return s.issueToken(profile)
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized(nil)
		}
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.Unauthorized(err)
	}

	return s.issueToken(profile)
}

func (s *Service) issueToken(profile *model.Profile) (*model.TokenResponse, error) {
	token, err := s.jwtService.GenerateAccessToken(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		Profile:     profile,
	}, nil
}
