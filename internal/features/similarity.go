package features

import "strings"

// NeutralInterestMatch is the match reported when the user stated no interests
const NeutralInterestMatch = 0.5

// AttractionTypes is the category vocabulary the similarity tables cover
var AttractionTypes = []string{
	"museum", "culture", "outdoor", "nature", "food",
	"nightlife", "wellness", "beach", "ski",
}

// Pair is a symmetric similarity entry between two attraction types
type Pair struct {
	A, B  string
	Score float64
}

// SimilarityTable scores how close an interest tag is to an activity category.
// Same category is 1, listed pairs use their score, everything else is 0.
// Tags outside the vocabulary only match themselves.
type SimilarityTable struct {
	vocabulary map[string]bool
	scores     map[[2]string]float64
}

// NewSimilarityTable builds a table over a vocabulary and its symmetric pairs
func NewSimilarityTable(vocabulary []string, pairs []Pair) *SimilarityTable {
	t := &SimilarityTable{
		vocabulary: make(map[string]bool, len(vocabulary)),
		scores:     make(map[[2]string]float64, len(pairs)),
	}
	for _, v := range vocabulary {
		t.vocabulary[normalizeTag(v)] = true
	}
	for _, p := range pairs {
		t.scores[pairKey(normalizeTag(p.A), normalizeTag(p.B))] = clamp01(p.Score)
	}
	return t
}

// Similarity returns a value in [0,1] for one interest and one category
func (t *SimilarityTable) Similarity(interest, category string) float64 {
	a, b := normalizeTag(interest), normalizeTag(category)
	if a == b {
		return 1
	}
	if !t.vocabulary[a] || !t.vocabulary[b] {
		return 0
	}
	return t.scores[pairKey(a, b)]
}

// InterestMatch is the best similarity between the category and any stated
// interest, or NeutralInterestMatch when there are none
func (t *SimilarityTable) InterestMatch(interests []string, category string) float64 {
	best := 0.0
	stated := 0
	for _, interest := range interests {
		if strings.TrimSpace(interest) == "" {
			continue
		}
		stated++
		if s := t.Similarity(interest, category); s > best {
			best = s
		}
	}
	if stated == 0 {
		return NeutralInterestMatch
	}
	return best
}

func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// GradedSimilarity is the fine-grained table used by the eco fit variant
var GradedSimilarity = NewSimilarityTable(AttractionTypes, []Pair{
	// close pairs
	{"museum", "culture", 0.88},
	{"nature", "outdoor", 0.85},
	{"culture", "outdoor", 0.52},
	{"museum", "nature", 0.48},
	{"outdoor", "wellness", 0.58},
	{"nature", "wellness", 0.55},
	{"food", "wellness", 0.42},
	{"beach", "outdoor", 0.72},
	{"beach", "nature", 0.65},
	{"ski", "outdoor", 0.70},
	{"ski", "nature", 0.62},
	{"nightlife", "food", 0.45},
	// weak pairs
	{"museum", "food", 0.28},
	{"culture", "food", 0.32},
	{"outdoor", "food", 0.35},
	{"nightlife", "culture", 0.38},
	{"wellness", "beach", 0.50},
	{"wellness", "ski", 0.45},
})

// RelatedSimilarity is the coarse related/weak table used by the base fit variant
var RelatedSimilarity = NewSimilarityTable(AttractionTypes, []Pair{
	{"museum", "culture", 0.9},
	{"outdoor", "nature", 0.8},
	{"beach", "outdoor", 0.6},
	{"beach", "nature", 0.6},
	{"ski", "outdoor", 0.6},
	{"food", "nightlife", 0.3},
	{"wellness", "beach", 0.3},
})
