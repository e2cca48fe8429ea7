package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bienestar-app/bienestar/internal/model"
)

func ids(defs []model.BadgeDefinition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.ID)
	}
	return out
}

func usage(n int) model.CategoryUsageList {
	list := make(model.CategoryUsageList, n)
	for i := range list {
		list[i] = model.CategoryUsage{Category: string(rune('a' + i)), Count: 1}
	}
	return list
}

func TestMetric(t *testing.T) {
	p := &model.UserProgress{CurrentStreak: 4, TotalEntries: 12, CategoriesUsed: usage(3)}

	assert.Equal(t, 4, Metric(model.BadgeCategoryStreak, p))
	assert.Equal(t, 12, Metric(model.BadgeCategoryTotal, p))
	assert.Equal(t, 3, Metric(model.BadgeCategoryVariety, p))
	assert.Equal(t, 0, Metric(model.BadgeCategoryStreak, nil))
}

func TestEvaluate_ConfigOrder(t *testing.T) {
	c := DefaultCatalog()
	p := &model.UserProgress{CurrentStreak: 7, TotalEntries: 10, CategoriesUsed: usage(3)}

	got := c.Evaluate(p, nil)
	assert.Equal(t, []string{"racha_3", "racha_7", "total_1", "total_10", "variedad_3"}, ids(got))
}

func TestEvaluate_SkipsUnlocked(t *testing.T) {
	c := DefaultCatalog()
	p := &model.UserProgress{CurrentStreak: 3, TotalEntries: 3, CategoriesUsed: usage(1)}

	got := c.Evaluate(p, map[string]bool{"racha_3": true})
	assert.Equal(t, []string{"total_1"}, ids(got))

	got = c.Evaluate(p, map[string]bool{"racha_3": true, "total_1": true})
	assert.Empty(t, got)
}

func TestEvaluate_ThresholdIsInclusive(t *testing.T) {
	c := DefaultCatalog()
	def, ok := c.Badge("racha_14")
	require.True(t, ok)

	assert.False(t, Satisfied(def, &model.UserProgress{CurrentStreak: 13}))
	assert.True(t, Satisfied(def, &model.UserProgress{CurrentStreak: 14}))
}

func TestPercent(t *testing.T) {
	def := model.BadgeDefinition{Category: model.BadgeCategoryTotal, Criteria: 10}

	assert.Equal(t, 0, Percent(def, &model.UserProgress{}))
	assert.Equal(t, 40, Percent(def, &model.UserProgress{TotalEntries: 4}))
	assert.Equal(t, 100, Percent(def, &model.UserProgress{TotalEntries: 25}))
}
