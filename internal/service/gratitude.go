package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/repository"
	"github.com/bienestar-app/bienestar/internal/validation"
	"github.com/google/uuid"
)

// GratitudeResult is what a new entry produced.
type GratitudeResult struct {
	Entry     *model.GratitudeEntry   `json:"entry"`
	Progress  *model.UserProgress     `json:"progress"`
	NewBadges []model.BadgeDefinition `json:"new_badges"`
}

type GratitudeService struct {
	gratitudeRepository repository.GratitudeEntryRepository
	userRepository      repository.UserRepository
	profileRepository   repository.ProfileRepository
	progressService     *ProgressService
	badgeService        *BadgeService
	emailService        *EmailService
	loc                 *time.Location
	now                 func() time.Time
}

func NewGratitudeService(
	gratitudeRepository repository.GratitudeEntryRepository,
	userRepository repository.UserRepository,
	profileRepository repository.ProfileRepository,
	progressService *ProgressService,
	badgeService *BadgeService,
	emailService *EmailService,
	loc *time.Location,
) *GratitudeService {
	return &GratitudeService{
		gratitudeRepository: gratitudeRepository,
		userRepository:      userRepository,
		profileRepository:   profileRepository,
		progressService:     progressService,
		badgeService:        badgeService,
		emailService:        emailService,
		loc:                 loc,
		now:                 time.Now,
	}
}

// Create stores an entry for date (today when nil), then updates progress
// and unlocks badges. The entry is kept even if the follow-up steps fail.
func (s *GratitudeService) Create(userID, text string, date *time.Time) (*GratitudeResult, error) {
	text = strings.TrimSpace(text)
	now := s.now()

	day := now
	if date != nil {
		day = *date
	}
	err := validation.ValidateGratitudeText(text)
	if err != nil {
		return nil, err
	}
	err = validation.ValidateEntryDate(day, now, s.loc)
	if err != nil {
		return nil, err
	}

	y, m, d := day.In(s.loc).Date()
	entry := &model.GratitudeEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      text,
		EntryDate: time.Date(y, m, d, 0, 0, 0, 0, s.loc),
		CreatedAt: now,
	}
	err = s.gratitudeRepository.Create(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to save gratitude entry: %w", err)
	}

	all, err := s.gratitudeRepository.Entries(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	updated, err := s.progressService.UpdateProgress(userID, entry, all)
	if err != nil {
		return nil, err
	}

	newBadges, err := s.badgeService.CheckForNewBadges(userID, updated)
	if err != nil {
		return nil, err
	}

	if len(newBadges) > 0 {
		s.notifyBadges(userID, newBadges)
	}

	return &GratitudeResult{Entry: entry, Progress: updated, NewBadges: newBadges}, nil
}

// Entries lists the user's entries, optionally only those dated on or after since.
func (s *GratitudeService) Entries(userID string, since *time.Time) ([]*model.GratitudeEntry, error) {
	if since == nil {
		return s.gratitudeRepository.Entries(userID)
	}
	return s.gratitudeRepository.Since(userID, *since)
}

func (s *GratitudeService) notifyBadges(userID string, badges []model.BadgeDefinition) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		slog.Warn("failed to load user for badge email", "error", err, "user_id", userID)
		return
	}

	name := ""
	profile, err := s.profileRepository.ByUserID(userID)
	if err == nil {
		name = profile.Name
	}

	err = s.emailService.SendBadgeUnlockedEmail(user.Email, name, badges)
	if err != nil {
		slog.Warn("failed to send badge email", "error", err, "user_id", userID)
	}
}
