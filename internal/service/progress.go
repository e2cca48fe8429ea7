package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/progress"
	"github.com/bienestar-app/bienestar/internal/repository"
)

// CategoryShare is one category's slice of a user's gratitude entries.
type CategoryShare struct {
	Category      string    `json:"category"`
	Count         int       `json:"count"`
	Percent       int       `json:"percent"`
	FirstUsedDate time.Time `json:"first_used_date"`
}

// ProgressView is stored progress plus values derived at read time.
type ProgressView struct {
	*model.UserProgress
	ActiveStreak int             `json:"active_streak"`
	Categories   []CategoryShare `json:"categories"`
}

type ProgressService struct {
	progressRepository  repository.ProgressRepository
	gratitudeRepository repository.GratitudeEntryRepository
	catalog             *progress.Catalog
	loc                 *time.Location
	maxRetries          int
	now                 func() time.Time
}

func NewProgressService(
	progressRepository repository.ProgressRepository,
	gratitudeRepository repository.GratitudeEntryRepository,
	catalog *progress.Catalog,
	loc *time.Location,
	maxRetries int,
) *ProgressService {
	return &ProgressService{
		progressRepository:  progressRepository,
		gratitudeRepository: gratitudeRepository,
		catalog:             catalog,
		loc:                 loc,
		maxRetries:          max(maxRetries, 1),
		now:                 time.Now,
	}
}

// UpdateProgress folds newEntry into the user's progress. allEntries must
// already contain newEntry. When another request wins the race for the row,
// entries are reloaded and the update is recomputed on the fresh row.
func (s *ProgressService) UpdateProgress(userID string, newEntry *model.GratitudeEntry, allEntries []*model.GratitudeEntry) (*model.UserProgress, error) {
	category := s.catalog.Categorize(newEntry.Text)

	return s.save(userID, func(p *model.UserProgress, entries []*model.GratitudeEntry) {
		now := s.now()
		streak := progress.CalculateStreak(s.entryDays(entries))

		p.CurrentStreak = streak
		p.LongestStreak = max(p.LongestStreak, streak)
		p.TotalEntries = len(entries)
		p.LastEntryDate = &now
		p.RecordCategory(category, now)
	}, allEntries)
}

// Rebuild recomputes progress from every stored entry, replaying categories in
// chronological order. The longest streak never shrinks.
func (s *ProgressService) Rebuild(userID string) (*model.UserProgress, error) {
	entries, err := s.gratitudeRepository.Entries(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	return s.save(userID, func(p *model.UserProgress, entries []*model.GratitudeEntry) {
		sorted := append([]*model.GratitudeEntry(nil), entries...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})

		days := s.entryDays(sorted)
		p.CurrentStreak = progress.CalculateStreak(days)
		p.LongestStreak = max(p.LongestStreak, progress.LongestRun(days), p.CurrentStreak)
		p.TotalEntries = len(sorted)
		p.CategoriesUsed = model.CategoryUsageList{}
		p.LastEntryDate = nil
		for _, e := range sorted {
			p.RecordCategory(s.catalog.Categorize(e.Text), e.CreatedAt)
			created := e.CreatedAt
			p.LastEntryDate = &created
		}
	}, entries)
}

func (s *ProgressService) save(userID string, apply func(*model.UserProgress, []*model.GratitudeEntry), entries []*model.GratitudeEntry) (*model.UserProgress, error) {
	for attempt := 1; ; attempt++ {
		current, err := s.progressRepository.ByUserID(userID)
		exists := err == nil
		if errors.Is(err, repository.ErrProgressNotFound) {
			current = &model.UserProgress{UserID: userID, CategoriesUsed: model.CategoryUsageList{}}
		} else if err != nil {
			return nil, fmt.Errorf("failed to load progress: %w", err)
		}

		apply(current, entries)

		if exists {
			err = s.progressRepository.Update(current)
		} else {
			err = s.progressRepository.Create(current)
		}
		if err == nil {
			return current, nil
		}
		if !errors.Is(err, repository.ErrProgressConflict) {
			return nil, fmt.Errorf("failed to save progress: %w", err)
		}
		if attempt >= s.maxRetries {
			return nil, fmt.Errorf("failed to save progress after %d attempts: %w", attempt, err)
		}

		slog.Warn("progress update conflict, retrying", "user_id", userID, "attempt", attempt)
		entries, err = s.gratitudeRepository.Entries(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload entries: %w", err)
		}
	}
}

// Progress returns the user's progress, or an empty record before the first entry.
func (s *ProgressService) Progress(userID string) (*ProgressView, error) {
	p, err := s.progressRepository.ByUserID(userID)
	if errors.Is(err, repository.ErrProgressNotFound) {
		p = &model.UserProgress{UserID: userID, CategoriesUsed: model.CategoryUsageList{}}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	// Freshness follows the newest entry day, not the submission time, so
	// backdated entries cannot keep a lapsed streak alive.
	lastDay, err := s.gratitudeRepository.LatestEntryDate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest entry date: %w", err)
	}

	return &ProgressView{
		UserProgress: p,
		ActiveStreak: progress.ActiveStreak(p.CurrentStreak, lastDay, s.now().In(s.loc)),
		Categories:   categoryShares(p.CategoriesUsed),
	}, nil
}

func (s *ProgressService) entryDays(entries []*model.GratitudeEntry) []time.Time {
	days := make([]time.Time, len(entries))
	for i, e := range entries {
		days[i] = e.EntryDate.In(s.loc)
	}
	return days
}

// categoryShares orders by count, keeping first-use order among equal counts.
func categoryShares(used model.CategoryUsageList) []CategoryShare {
	total := 0
	for _, u := range used {
		total += u.Count
	}

	shares := make([]CategoryShare, len(used))
	for i, u := range used {
		shares[i] = CategoryShare{Category: u.Category, Count: u.Count, FirstUsedDate: u.FirstUsedDate}
		if total > 0 {
			shares[i].Percent = int(math.Round(float64(u.Count) * 100 / float64(total)))
		}
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})
	return shares
}
