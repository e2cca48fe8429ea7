package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/progress"
	"github.com/bienestar-app/bienestar/internal/repository"
	"github.com/bienestar-app/bienestar/internal/validation"
)

type BadgeService struct {
	badgeRepository repository.BadgeRepository
	catalog         *progress.Catalog
	now             func() time.Time
}

func NewBadgeService(badgeRepository repository.BadgeRepository, catalog *progress.Catalog) *BadgeService {
	return &BadgeService{
		badgeRepository: badgeRepository,
		catalog:         catalog,
		now:             time.Now,
	}
}

// CheckForNewBadges records every badge p now satisfies that the user does
// not hold yet and returns them in catalog order. A badge a concurrent call
// already recorded is not returned twice.
func (s *BadgeService) CheckForNewBadges(userID string, p *model.UserProgress) ([]model.BadgeDefinition, error) {
	unlocked, err := s.unlockedSet(userID)
	if err != nil {
		return nil, err
	}

	earned := s.catalog.Evaluate(p, unlocked)
	newlyUnlocked := make([]model.BadgeDefinition, 0, len(earned))
	now := s.now()
	for _, def := range earned {
		isNew, err := s.badgeRepository.Unlock(userID, def.ID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to unlock badge %s: %w", def.ID, err)
		}
		if isNew {
			newlyUnlocked = append(newlyUnlocked, def)
			slog.Info("badge unlocked", "user_id", userID, "badge_id", def.ID)
		}
	}

	return newlyUnlocked, nil
}

// Badges joins every catalog badge with the user's state for it.
func (s *BadgeService) Badges(userID string, p *model.UserProgress) ([]model.BadgeStatus, error) {
	records, err := s.badgeRepository.ByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}

	byID := make(map[string]*model.UserBadge, len(records))
	for _, r := range records {
		byID[r.BadgeID] = r
	}

	defs := s.catalog.Badges()
	statuses := make([]model.BadgeStatus, len(defs))
	for i, def := range defs {
		status := model.BadgeStatus{
			BadgeDefinition: def,
			Current:         progress.Metric(def.Category, p),
			Percent:         progress.Percent(def, p),
		}
		if r, ok := byID[def.ID]; ok {
			unlockedAt := r.UnlockedAt
			status.Unlocked = true
			status.UnlockedAt = &unlockedAt
			status.Notified = r.Notified
			status.Percent = 100
		}
		statuses[i] = status
	}

	return statuses, nil
}

// MarkNotified flags the given unlocked badges as shown to the user.
func (s *BadgeService) MarkNotified(userID string, badgeIDs []string) (int64, error) {
	for _, id := range badgeIDs {
		if _, ok := s.catalog.Badge(id); !ok {
			return 0, &validation.Error{Field: "badge_ids", Message: fmt.Sprintf("unknown badge %q", id)}
		}
	}

	n, err := s.badgeRepository.MarkNotified(userID, badgeIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to mark badges notified: %w", err)
	}
	return n, nil
}

func (s *BadgeService) unlockedSet(userID string) (map[string]bool, error) {
	records, err := s.badgeRepository.ByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}

	unlocked := make(map[string]bool, len(records))
	for _, r := range records {
		unlocked[r.BadgeID] = true
	}
	return unlocked, nil
}
