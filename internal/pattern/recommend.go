package pattern

const resourcePath = "/api/resources/"

type Recommendation struct {
	Kind     string   `json:"kind"`
	Pattern  Type     `json:"pattern,omitempty"`
	Priority Severity `json:"priority"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Resource string   `json:"resource"`
	Actions  []string `json:"actions,omitempty"`
}

const (
	KindResource        = "resource"
	KindImmediateAction = "immediate_action"
)

var resources = map[Type]struct {
	title   string
	message string
	slug    string
}{
	TypeEmotionalDecline: {
		title:   "Manejo de emociones difíciles",
		message: "Algunas ideas para cuando te sientes triste, enojado o ansioso.",
		slug:    "manejo-emocional",
	},
	TypeMoodSwings: {
		title:   "Regulación emocional",
		message: "Herramientas para entender y acompañar los cambios de ánimo.",
		slug:    "regulacion-emocional",
	},
	TypeGratitudeGap: {
		title:   "Práctica de gratitud",
		message: "Retoma tu diario con ejercicios cortos.",
		slug:    "practica-gratitud",
	},
}

// ImmediateSupportSlug is the resource linked from immediate-action blocks.
const ImmediateSupportSlug = "apoyo-inmediato"

// ResourceSlugs lists every resource a recommendation may link to.
func ResourceSlugs() []string {
	return []string{
		resources[TypeEmotionalDecline].slug,
		resources[TypeMoodSwings].slug,
		resources[TypeGratitudeGap].slug,
		ImmediateSupportSlug,
	}
}

// Recommend maps each pattern to its resource link. A HIGH pattern also
// yields an immediate-action block, placed first.
func Recommend(patterns []Pattern) []Recommendation {
	recs := []Recommendation{}
	immediate := false

	for _, p := range patterns {
		res, ok := resources[p.Type]
		if !ok {
			continue
		}
		recs = append(recs, Recommendation{
			Kind:     KindResource,
			Pattern:  p.Type,
			Priority: p.Severity,
			Title:    res.title,
			Message:  res.message,
			Resource: resourcePath + res.slug,
		})
		if p.Severity == SeverityHigh {
			immediate = true
		}
	}

	if immediate {
		block := Recommendation{
			Kind:     KindImmediateAction,
			Priority: SeverityHigh,
			Title:    "Busca apoyo hoy",
			Message:  "No tienes que pasar por esto solo. Cuéntale a un adulto de confianza cómo te sientes.",
			Resource: resourcePath + ImmediateSupportSlug,
			Actions: []string{
				"Habla hoy con tu profesor jefe o con orientación.",
				"Si te sientes en peligro, llama a un adulto o a una línea de ayuda.",
			},
		}
		recs = append([]Recommendation{block}, recs...)
	}

	return recs
}
