// Package progress holds the gratitude gamification engine: streaks,
// keyword categorization and badge rules.
//
// Everything here is pure computation over records loaded by the caller.
// The static tables live in a Catalog built once at startup and shared
// read-only between requests.
package progress

import (
	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/textnorm"
)

// DefaultCategory is returned when no keyword matches.
const DefaultCategory = "momentos"

type CategoryKeywords struct {
	Category string
	Keywords []string
}

// Catalog is the read-only category keyword table and badge rule table.
type Catalog struct {
	categories      []CategoryKeywords
	folded          [][]string
	defaultCategory string
	badges          []model.BadgeDefinition
}

// NewCatalog copies the given tables so later changes by the caller are not observed.
func NewCatalog(categories []CategoryKeywords, defaultCategory string, badges []model.BadgeDefinition) *Catalog {
	c := &Catalog{
		categories:      make([]CategoryKeywords, len(categories)),
		folded:          make([][]string, len(categories)),
		defaultCategory: defaultCategory,
		badges:          append([]model.BadgeDefinition(nil), badges...),
	}

	for i, ck := range categories {
		keywords := append([]string(nil), ck.Keywords...)
		c.categories[i] = CategoryKeywords{Category: ck.Category, Keywords: keywords}

		folded := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			f := textnorm.Fold(kw)
			if f != "" {
				folded = append(folded, f)
			}
		}
		c.folded[i] = folded
	}

	return c
}

// Categories returns the category names in declaration order, default last.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories)+1)
	for _, ck := range c.categories {
		names = append(names, ck.Category)
	}
	return append(names, c.defaultCategory)
}

func (c *Catalog) DefaultCategory() string {
	return c.defaultCategory
}

// Badges returns a copy of the badge table in declaration order.
func (c *Catalog) Badges() []model.BadgeDefinition {
	return append([]model.BadgeDefinition(nil), c.badges...)
}

func (c *Catalog) Badge(id string) (model.BadgeDefinition, bool) {
	for _, b := range c.badges {
		if b.ID == id {
			return b, true
		}
	}
	return model.BadgeDefinition{}, false
}

// DefaultCatalog returns the production keyword and badge tables.
// Badges are declared streak first, then total, then variety.
func DefaultCatalog() *Catalog {
	categories := []CategoryKeywords{
		{Category: "familia", Keywords: []string{"familia", "mamá", "papá", "madre", "padre", "hermano", "hermana", "abuelo", "abuela", "primo", "prima"}},
		{Category: "amistad", Keywords: []string{"amigo", "amiga", "amistad", "compañero", "compañera", "juntos"}},
		{Category: "escuela", Keywords: []string{"escuela", "colegio", "clase", "profesor", "profesora", "maestro", "maestra", "aprendí", "tarea", "examen", "estudiar"}},
		{Category: "salud", Keywords: []string{"salud", "dormir", "dormí", "descanso", "ejercicio", "deporte", "médico", "sanar"}},
		{Category: "naturaleza", Keywords: []string{"naturaleza", "parque", "árbol", "flores", "playa", "montaña", "cielo", "lluvia", "atardecer"}},
		{Category: "mascotas", Keywords: []string{"perro", "perrito", "gato", "gatito", "mascota"}},
		{Category: "comida", Keywords: []string{"comida", "desayuno", "almuerzo", "pizza", "helado", "postre", "comer", "cociné"}},
		{Category: "logros", Keywords: []string{"logré", "logro", "gané", "aprobé", "meta", "premio", "orgullo", "conseguí"}},
	}

	badges := []model.BadgeDefinition{
		{ID: "racha_3", Name: "Constancia", Description: "3 días seguidos agradeciendo", Category: model.BadgeCategoryStreak, Criteria: 3, Emoji: "🔥", Color: "#F97316"},
		{ID: "racha_7", Name: "Semana agradecida", Description: "7 días seguidos agradeciendo", Category: model.BadgeCategoryStreak, Criteria: 7, Emoji: "⭐", Color: "#EAB308"},
		{ID: "racha_14", Name: "Hábito en marcha", Description: "14 días seguidos agradeciendo", Category: model.BadgeCategoryStreak, Criteria: 14, Emoji: "🌟", Color: "#F59E0B"},
		{ID: "racha_30", Name: "Mes de gratitud", Description: "30 días seguidos agradeciendo", Category: model.BadgeCategoryStreak, Criteria: 30, Emoji: "🏆", Color: "#DC2626"},

		{ID: "total_1", Name: "Primer paso", Description: "Tu primera entrada de gratitud", Category: model.BadgeCategoryTotal, Criteria: 1, Emoji: "🌱", Color: "#22C55E"},
		{ID: "total_10", Name: "Diez gracias", Description: "10 entradas de gratitud", Category: model.BadgeCategoryTotal, Criteria: 10, Emoji: "🌿", Color: "#16A34A"},
		{ID: "total_25", Name: "Jardín creciente", Description: "25 entradas de gratitud", Category: model.BadgeCategoryTotal, Criteria: 25, Emoji: "🌳", Color: "#15803D"},
		{ID: "total_50", Name: "Bosque de gratitud", Description: "50 entradas de gratitud", Category: model.BadgeCategoryTotal, Criteria: 50, Emoji: "🌲", Color: "#166534"},
		{ID: "total_100", Name: "Centenario", Description: "100 entradas de gratitud", Category: model.BadgeCategoryTotal, Criteria: 100, Emoji: "💯", Color: "#14532D"},

		{ID: "variedad_3", Name: "Explorador", Description: "Agradeciste en 3 categorías distintas", Category: model.BadgeCategoryVariety, Criteria: 3, Emoji: "🧭", Color: "#3B82F6"},
		{ID: "variedad_5", Name: "Corazón amplio", Description: "Agradeciste en 5 categorías distintas", Category: model.BadgeCategoryVariety, Criteria: 5, Emoji: "💙", Color: "#2563EB"},
		{ID: "variedad_9", Name: "Mirada completa", Description: "Agradeciste en todas las categorías", Category: model.BadgeCategoryVariety, Criteria: 9, Emoji: "🌈", Color: "#7C3AED"},
	}

	return NewCatalog(categories, DefaultCategory, badges)
}
