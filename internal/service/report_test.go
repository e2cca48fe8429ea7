package service

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bienestar-app/bienestar/internal/climate"
	"github.com/bienestar-app/bienestar/internal/model"
)

type memoryReportStore struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemoryReportStore() *memoryReportStore {
	return &memoryReportStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryReportStore) Put(_ context.Context, key, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memoryReportStore) PresignedURL(_ context.Context, key string) (string, error) {
	return "https://reports.example.com/" + key + "?signed=1", nil
}

func TestReportService_PublishWeekly(t *testing.T) {
	env := newTestEnv(t)
	director := env.account(t, model.RoleDirector, "")
	store := newMemoryReportStore()
	reports := NewReportService(env.climate, store)
	reports.now = env.clock.Now
	require.True(t, reports.Enabled())

	end := time.Date(2025, 5, 12, 12, 0, 0, 0, santiago)
	for i := 0; i < 15; i++ {
		s := env.account(t, model.RoleStudent, "8 B")
		env.moodAt(t, s.UserID, end, model.MoodGood, "tranquilo")
	}

	published, err := reports.PublishWeekly(context.Background(), director, end, "8 B")
	require.NoError(t, err)
	assert.Contains(t, published.Key, "reports/weekly/8%20B/2025-05-06_2025-05-12-")
	assert.Contains(t, published.URL, published.Key)
	assert.Equal(t, "application/json", store.types[published.Key])

	var stored WeeklyClimate
	require.NoError(t, json.Unmarshal(store.objects[published.Key], &stored))
	assert.Equal(t, climate.StatusOK, stored.Status)
	assert.Equal(t, 15, stored.SampleSize)
	require.NotNil(t, stored.Trend)
	assert.Len(t, stored.Trend.Days, 7)
}

func TestReportService_Guards(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.account(t, model.RoleTeacher, "7A")
	director := env.account(t, model.RoleDirector, "")
	end := env.clock.Now()

	_, err := NewReportService(env.climate, newMemoryReportStore()).PublishWeekly(context.Background(), teacher, end, "")
	assert.ErrorIs(t, err, ErrForbidden)

	disabled := NewReportService(env.climate, nil)
	assert.False(t, disabled.Enabled())
	_, err = disabled.PublishWeekly(context.Background(), director, end, "")
	assert.ErrorIs(t, err, ErrReportsDisabled)
}
