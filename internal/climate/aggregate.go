package climate

import (
	"sort"
	"strings"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/textnorm"
)

type Status string

const (
	StatusOK               Status = "ok"
	StatusInsufficientData Status = "insufficient_data"
)

// topN is how many emotions and places a summary lists.
const topN = 3

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Summary struct {
	Average          float64      `json:"average"`
	Band             Band         `json:"band"`
	BandLabel        string       `json:"band_label"`
	MoodDistribution []LabelCount `json:"mood_distribution"`
	TopEmotions      []LabelCount `json:"top_emotions"`
	TopPlaces        []LabelCount `json:"top_places"`
}

// Report is either a full Summary or, below the privacy floor, only the
// sample size and the floor. Nothing record-level leaks in the second case.
type Report struct {
	Status        Status   `json:"status"`
	SampleSize    int      `json:"sample_size"`
	MinimumSample int      `json:"minimum_sample"`
	Summary       *Summary `json:"summary,omitempty"`
}

func (r Report) Sufficient() bool {
	return r.Status == StatusOK
}

// Compute summarizes records unless there are fewer than minimumSample of them.
func Compute(records []*model.MoodRecord, minimumSample int) Report {
	if minimumSample < 1 {
		minimumSample = 1
	}

	report := Report{
		SampleSize:    len(records),
		MinimumSample: minimumSample,
	}
	if len(records) < minimumSample {
		report.Status = StatusInsufficientData
		return report
	}

	report.Status = StatusOK
	report.Summary = summarize(records)
	return report
}

func summarize(records []*model.MoodRecord) *Summary {
	mean := meanScore(records)
	band := ClassifyDaily(mean)

	return &Summary{
		Average:          round1(mean),
		Band:             band,
		BandLabel:        band.Label(),
		MoodDistribution: moodDistribution(records),
		TopEmotions:      top(records, func(r *model.MoodRecord) string { return r.Emotion }, topN),
		TopPlaces:        top(records, func(r *model.MoodRecord) string { return r.Place }, topN),
	}
}

// moodDistribution counts raw mood labels, scale levels first (lowest to
// highest, zero counts included) then unknown labels in order of appearance.
func moodDistribution(records []*model.MoodRecord) []LabelCount {
	counts := make(map[model.MoodLevel]int)
	var unknown []model.MoodLevel
	for _, r := range records {
		if _, seen := counts[r.Mood]; !seen && !r.Mood.Valid() {
			unknown = append(unknown, r.Mood)
		}
		counts[r.Mood]++
	}

	out := make([]LabelCount, 0, len(model.MoodLevels)+len(unknown))
	for _, level := range model.MoodLevels {
		out = append(out, LabelCount{Label: string(level), Count: counts[level]})
	}
	for _, level := range unknown {
		out = append(out, LabelCount{Label: string(level), Count: counts[level]})
	}
	return out
}

// top returns the n most frequent non-empty labels. Labels that differ only
// in case or accents count together under the first spelling seen. Ties keep
// first appearance order.
func top(records []*model.MoodRecord, label func(*model.MoodRecord) string, n int) []LabelCount {
	index := make(map[string]int)
	var counts []LabelCount
	for _, r := range records {
		l := strings.TrimSpace(label(r))
		key := textnorm.Fold(l)
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(counts)
			index[key] = i
			counts = append(counts, LabelCount{Label: l})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
