package progress

import (
	"github.com/bienestar-app/bienestar/internal/model"
)

// Metric returns the progress value a badge category is measured against.
func Metric(category model.BadgeCategory, p *model.UserProgress) int {
	if p == nil {
		return 0
	}

	switch category {
	case model.BadgeCategoryStreak:
		return p.CurrentStreak
	case model.BadgeCategoryTotal:
		return p.TotalEntries
	case model.BadgeCategoryVariety:
		return len(p.CategoriesUsed)
	}

	return 0
}

func Satisfied(def model.BadgeDefinition, p *model.UserProgress) bool {
	return Metric(def.Category, p) >= def.Criteria
}

// Percent is the 0..100 completion of def for p.
func Percent(def model.BadgeDefinition, p *model.UserProgress) int {
	if def.Criteria <= 0 {
		return 100
	}
	pct := Metric(def.Category, p) * 100 / def.Criteria
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Evaluate returns the badges p satisfies that are not in unlocked, in
// catalog order.
func (c *Catalog) Evaluate(p *model.UserProgress, unlocked map[string]bool) []model.BadgeDefinition {
	var earned []model.BadgeDefinition
	for _, def := range c.badges {
		if unlocked[def.ID] {
			continue
		}
		if Satisfied(def, p) {
			earned = append(earned, def)
		}
	}
	return earned
}
