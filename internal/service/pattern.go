package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/bienestar-app/bienestar/internal/climate"
	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/pattern"
	"github.com/bienestar-app/bienestar/internal/repository"
)

type PatternReport struct {
	UserID     string    `json:"user_id"`
	WindowDays int       `json:"window_days"`
	Since      time.Time `json:"since"`
	pattern.Analysis
}

type PatternService struct {
	moodRepository      repository.MoodRecordRepository
	gratitudeRepository repository.GratitudeEntryRepository
	profileRepository   repository.ProfileRepository
	windowDays          int
	loc                 *time.Location
	now                 func() time.Time
}

func NewPatternService(
	moodRepository repository.MoodRecordRepository,
	gratitudeRepository repository.GratitudeEntryRepository,
	profileRepository repository.ProfileRepository,
	windowDays int,
	loc *time.Location,
) *PatternService {
	return &PatternService{
		moodRepository:      moodRepository,
		gratitudeRepository: gratitudeRepository,
		profileRepository:   profileRepository,
		windowDays:          max(windowDays, 1),
		loc:                 loc,
		now:                 time.Now,
	}
}

// ForUser analyzes the user's moods of the last windowDays*24h and the
// gratitude entries dated on or after the day that window starts.
func (s *PatternService) ForUser(userID string) (*PatternReport, error) {
	since := s.now().Add(-time.Duration(s.windowDays) * 24 * time.Hour)

	moods, err := s.moodRepository.Since(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood records: %w", err)
	}

	gratitude, err := s.gratitudeRepository.Since(userID, climate.StartOfDay(since.In(s.loc)))
	if err != nil {
		return nil, fmt.Errorf("failed to load gratitude entries: %w", err)
	}

	return &PatternReport{
		UserID:     userID,
		WindowDays: s.windowDays,
		Since:      since,
		Analysis:   pattern.Analyze(moods, gratitude),
	}, nil
}

// ForStudent lets a teacher of the student's group, or a director, read a student's patterns.
func (s *PatternService) ForStudent(viewer *model.Profile, studentID string) (*PatternReport, error) {
	if !viewer.Role.IsStaff() {
		return nil, ErrForbidden
	}

	student, err := s.profileRepository.ByUserID(studentID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if student.Role != model.RoleStudent {
		return nil, ErrStudentNotFound
	}

	if viewer.Role == model.RoleTeacher && (viewer.GroupName == "" || viewer.GroupName != student.GroupName) {
		return nil, ErrForbidden
	}

	return s.ForUser(studentID)
}
