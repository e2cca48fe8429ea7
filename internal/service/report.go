package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/storage"
)

type PublishedReport struct {
	Key    string         `json:"key"`
	URL    string         `json:"url"`
	Report *WeeklyClimate `json:"report"`
}

// ReportService publishes weekly climate reports to object storage.
type ReportService struct {
	climateService *ClimateService
	store          storage.ReportStore
	now            func() time.Time
}

// NewReportService accepts a nil store; publishing then fails with ErrReportsDisabled.
func NewReportService(climateService *ClimateService, store storage.ReportStore) *ReportService {
	return &ReportService{
		climateService: climateService,
		store:          store,
		now:            time.Now,
	}
}

func (s *ReportService) Enabled() bool {
	return s.store != nil
}

// PublishWeekly stores the weekly climate as JSON and returns a temporary link.
// Only directors publish reports.
func (s *ReportService) PublishWeekly(ctx context.Context, viewer *model.Profile, end time.Time, group string) (*PublishedReport, error) {
	if viewer.Role != model.RoleDirector {
		return nil, ErrForbidden
	}
	if s.store == nil {
		return nil, ErrReportsDisabled
	}

	weekly, err := s.climateService.Weekly(viewer, end, group)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(weekly, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	scope := "colegio"
	if weekly.Group != "" {
		scope = url.PathEscape(weekly.Group)
	}
	key := fmt.Sprintf("reports/weekly/%s/%s_%s-%d.json", scope, weekly.Start, weekly.End, s.now().Unix())

	err = s.store.Put(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	link, err := s.store.PresignedURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign report link: %w", err)
	}

	slog.Info("weekly climate report published", "key", key, "group", weekly.Group, "status", weekly.Status)
	return &PublishedReport{Key: key, URL: link, Report: weekly}, nil
}
