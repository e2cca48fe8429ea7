package progress

import (
	"strings"

	"github.com/bienestar-app/bienestar/internal/textnorm"
)

// Categorize returns the first category, in declaration order, with a keyword
// contained in text. Matching ignores case and accents. Text with no match
// gets the default category.
func (c *Catalog) Categorize(text string) string {
	folded := textnorm.Fold(text)
	if folded == "" {
		return c.defaultCategory
	}

	for i, keywords := range c.folded {
		for _, kw := range keywords {
			if strings.Contains(folded, kw) {
				return c.categories[i].Category
			}
		}
	}

	return c.defaultCategory
}
