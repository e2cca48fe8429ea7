package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/repository"
	"github.com/bienestar-app/bienestar/internal/validation"
	"github.com/google/uuid"
)

type MoodInput struct {
	Mood    model.MoodLevel `json:"mood"`
	Emotion string          `json:"emotion"`
	Place   string          `json:"place"`
	Comment string          `json:"comment"`
}

type MoodService struct {
	moodRepository repository.MoodRecordRepository
	now            func() time.Time
}

func NewMoodService(moodRepository repository.MoodRecordRepository) *MoodService {
	return &MoodService{
		moodRepository: moodRepository,
		now:            time.Now,
	}
}

func (s *MoodService) Create(userID string, input MoodInput) (*model.MoodRecord, error) {
	record := &model.MoodRecord{
		ID:        uuid.New().String(),
		UserID:    userID,
		Mood:      model.MoodLevel(strings.TrimSpace(string(input.Mood))),
		Emotion:   strings.TrimSpace(input.Emotion),
		Place:     strings.TrimSpace(input.Place),
		Comment:   strings.TrimSpace(input.Comment),
		CreatedAt: s.now(),
	}

	for _, err := range []error{
		validation.ValidateMood(record.Mood),
		validation.ValidateLabel("emotion", record.Emotion),
		validation.ValidateLabel("place", record.Place),
		validation.ValidateComment(record.Comment),
	} {
		if err != nil {
			return nil, err
		}
	}

	err := s.moodRepository.Create(record)
	if err != nil {
		return nil, fmt.Errorf("failed to save mood record: %w", err)
	}

	return record, nil
}

// Records lists the user's records created at or after since.
func (s *MoodService) Records(userID string, since time.Time) ([]*model.MoodRecord, error) {
	return s.moodRepository.Since(userID, since)
}
