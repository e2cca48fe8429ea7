package service

import (
	"fmt"
	"time"

	"github.com/bienestar-app/bienestar/internal/climate"
	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/repository"
)

// DailyClimate is one day's aggregate for a group ("" is the whole school).
type DailyClimate struct {
	Date  string `json:"date"`
	Group string `json:"group"`
	climate.Report
}

// WeeklyClimate gates the trend behind the privacy floor of the whole week.
type WeeklyClimate struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Group string `json:"group"`
	climate.Report
	Trend *climate.Trend `json:"trend,omitempty"`
}

type ClimateService struct {
	profileRepository repository.ProfileRepository
	moodRepository    repository.MoodRecordRepository
	loc               *time.Location
	minimumSample     int
}

func NewClimateService(
	profileRepository repository.ProfileRepository,
	moodRepository repository.MoodRecordRepository,
	loc *time.Location,
	minimumSample int,
) *ClimateService {
	return &ClimateService{
		profileRepository: profileRepository,
		moodRepository:    moodRepository,
		loc:               loc,
		minimumSample:     minimumSample,
	}
}

// ResolveGroup decides which group viewer may see. Teachers are pinned to
// their own group; directors get what they ask for, "" meaning the school.
func (s *ClimateService) ResolveGroup(viewer *model.Profile, requested string) (string, error) {
	switch viewer.Role {
	case model.RoleDirector:
		return requested, nil
	case model.RoleTeacher:
		if viewer.GroupName == "" {
			return "", ErrForbidden
		}
		if requested != "" && requested != viewer.GroupName {
			return "", ErrForbidden
		}
		return viewer.GroupName, nil
	}
	return "", ErrForbidden
}

func (s *ClimateService) Daily(viewer *model.Profile, date time.Time, requestedGroup string) (*DailyClimate, error) {
	group, err := s.ResolveGroup(viewer, requestedGroup)
	if err != nil {
		return nil, err
	}

	day := climate.StartOfDay(date.In(s.loc))
	records, err := s.records(group, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return &DailyClimate{
		Date:   day.Format(time.DateOnly),
		Group:  group,
		Report: climate.Compute(records, s.minimumSample),
	}, nil
}

// Weekly covers the seven days ending on end, inclusive.
func (s *ClimateService) Weekly(viewer *model.Profile, end time.Time, requestedGroup string) (*WeeklyClimate, error) {
	group, err := s.ResolveGroup(viewer, requestedGroup)
	if err != nil {
		return nil, err
	}

	last := climate.StartOfDay(end.In(s.loc))
	start := last.AddDate(0, 0, -(climate.TrendDays - 1))
	records, err := s.records(group, start, last.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	weekly := &WeeklyClimate{
		Start:  start.Format(time.DateOnly),
		End:    last.Format(time.DateOnly),
		Group:  group,
		Report: climate.Compute(records, s.minimumSample),
	}
	if weekly.Sufficient() {
		trend := climate.ComputeTrend(records, start)
		weekly.Trend = &trend
	}

	return weekly, nil
}

func (s *ClimateService) records(group string, start, end time.Time) ([]*model.MoodRecord, error) {
	ids, err := s.profileRepository.StudentIDs(group)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	records, err := s.moodRepository.ForUsers(ids, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood records: %w", err)
	}

	return records, nil
}
