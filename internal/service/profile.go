package service

import (
	"strings"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/repository"
	"github.com/bienestar-app/bienestar/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

func (s *ProfileService) ByUserID(userID string) (*model.Profile, error) {
	return s.profileRepo.ByUserID(userID)
}

func (s *ProfileService) UpdateName(userID, name string) (*model.Profile, error) {
	name = strings.TrimSpace(name)

	err := validation.ValidateName(name)
	if err != nil {
		return nil, err
	}

	err = s.profileRepo.UpdateName(userID, name)
	if err != nil {
		return nil, err
	}

	return s.profileRepo.ByUserID(userID)
}
