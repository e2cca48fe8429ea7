package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type CategoryUsage struct {
	Category      string    `json:"category"`
	Count         int       `json:"count"`
	FirstUsedDate time.Time `json:"first_used_date"`
}

// CategoryUsageList is stored as a JSON document in user_progress.categories_used.
type CategoryUsageList []CategoryUsage

func (l CategoryUsageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *CategoryUsageList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = CategoryUsageList{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported categories_used type %T", src)
	}
	if len(data) == 0 {
		*l = CategoryUsageList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

type UserProgress struct {
	UserID         string            `db:"user_id" json:"user_id"`
	CurrentStreak  int               `db:"current_streak" json:"current_streak"`
	LongestStreak  int               `db:"longest_streak" json:"longest_streak"`
	TotalEntries   int               `db:"total_entries" json:"total_entries"`
	LastEntryDate  *time.Time        `db:"last_entry_date" json:"last_entry_date"`
	CategoriesUsed CategoryUsageList `db:"categories_used" json:"categories_used"`
	Version        int               `db:"version" json:"-"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
}

// RecordCategory bumps the counter for category, adding it with firstUsed when absent.
func (p *UserProgress) RecordCategory(category string, firstUsed time.Time) {
	for i := range p.CategoriesUsed {
		if p.CategoriesUsed[i].Category == category {
			p.CategoriesUsed[i].Count++
			return
		}
	}
	p.CategoriesUsed = append(p.CategoriesUsed, CategoryUsage{
		Category:      category,
		Count:         1,
		FirstUsedDate: firstUsed,
	})
}
