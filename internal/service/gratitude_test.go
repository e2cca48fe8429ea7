package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/validation"
)

func badgeIDs(defs []model.BadgeDefinition) []string {
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.ID
	}
	return ids
}

func TestGratitudeService_CreateUpdatesProgressAndBadges(t *testing.T) {
	env := newTestEnv(t)
	student := env.account(t, model.RoleStudent, "7A")

	may10 := time.Date(2025, 5, 10, 0, 0, 0, 0, santiago)
	may11 := time.Date(2025, 5, 11, 0, 0, 0, 0, santiago)

	res, err := env.gratitude.Create(student.UserID, "Agradezco a mi mamá", &may10)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Progress.CurrentStreak)
	assert.Equal(t, 1, res.Progress.TotalEntries)
	assert.Equal(t, []string{"total_1"}, badgeIDs(res.NewBadges))
	assert.Equal(t, "2025-05-10", res.Entry.EntryDate.In(santiago).Format(time.DateOnly))

	res, err = env.gratitude.Create(student.UserID, "mi amigo Pedro", &may11)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Progress.CurrentStreak)
	assert.Empty(t, res.NewBadges)

	res, err = env.gratitude.Create(student.UserID, "  el parque  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "el parque", res.Entry.Text)
	assert.Equal(t, 3, res.Progress.CurrentStreak)
	assert.Equal(t, 3, res.Progress.LongestStreak)
	assert.Equal(t, 3, res.Progress.TotalEntries)
	// config order: streak badges before variety badges
	assert.Equal(t, []string{"racha_3", "variedad_3"}, badgeIDs(res.NewBadges))

	var categories []string
	for _, c := range res.Progress.CategoriesUsed {
		categories = append(categories, c.Category)
	}
	assert.Equal(t, []string{"familia", "amistad", "naturaleza"}, categories)

	// a second entry the same day counts once for the streak
	res, err = env.gratitude.Create(student.UserID, "una tarde tranquila", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Progress.CurrentStreak)
	assert.Equal(t, 4, res.Progress.TotalEntries)
	assert.Equal(t, "momentos", res.Progress.CategoriesUsed[3].Category)
}

func TestGratitudeService_RejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	student := env.account(t, model.RoleStudent, "7A")

	_, err := env.gratitude.Create(student.UserID, "   ", nil)
	assert.True(t, validation.IsValidationError(err))

	tomorrow := env.clock.Now().AddDate(0, 0, 1)
	_, err = env.gratitude.Create(student.UserID, "mañana", &tomorrow)
	assert.True(t, validation.IsValidationError(err))

	entries, err := env.gratitude.Entries(student.UserID, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGratitudeService_EntriesSince(t *testing.T) {
	env := newTestEnv(t)
	student := env.account(t, model.RoleStudent, "7A")

	for _, d := range []int{8, 10, 12} {
		day := time.Date(2025, 5, d, 0, 0, 0, 0, santiago)
		_, err := env.gratitude.Create(student.UserID, "gracias", &day)
		require.NoError(t, err)
	}

	since := time.Date(2025, 5, 10, 0, 0, 0, 0, santiago)
	entries, err := env.gratitude.Entries(student.UserID, &since)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBadgeService_IdempotentAndStatus(t *testing.T) {
	env := newTestEnv(t)
	student := env.account(t, model.RoleStudent, "7A")

	res, err := env.gratitude.Create(student.UserID, "mi perro", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"total_1"}, badgeIDs(res.NewBadges))

	again, err := env.badges.CheckForNewBadges(student.UserID, res.Progress)
	require.NoError(t, err)
	assert.Empty(t, again)

	statuses, err := env.badges.Badges(student.UserID, res.Progress)
	require.NoError(t, err)
	require.Len(t, statuses, 12)

	byID := map[string]model.BadgeStatus{}
	for _, s := range statuses {
		byID[s.ID] = s
	}
	assert.True(t, byID["total_1"].Unlocked)
	assert.NotNil(t, byID["total_1"].UnlockedAt)
	assert.Equal(t, 100, byID["total_1"].Percent)
	assert.False(t, byID["total_10"].Unlocked)
	assert.Equal(t, 1, byID["total_10"].Current)
	assert.Equal(t, 10, byID["total_10"].Percent)
	assert.Equal(t, 33, byID["racha_3"].Percent)

	_, err = env.badges.MarkNotified(student.UserID, []string{"total_1", "inventada"})
	assert.True(t, validation.IsValidationError(err))

	n, err := env.badges.MarkNotified(student.UserID, []string{"total_1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	statuses, err = env.badges.Badges(student.UserID, res.Progress)
	require.NoError(t, err)
	for _, s := range statuses {
		if s.ID == "total_1" {
			assert.True(t, s.Notified)
		}
	}
}
