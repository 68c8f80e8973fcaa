package plangen

import (
	"strings"

	"growthplan/internal/model"
)

// ExclusionSet is a set of normalized dedup keys used to suppress repeats
// within a day and across a week.
type ExclusionSet struct {
	keys map[string]struct{}
}

func NewExclusionSet() *ExclusionSet {
	return &ExclusionSet{keys: make(map[string]struct{})}
}

func (s *ExclusionSet) Add(key string) {
	s.keys[key] = struct{}{}
}

func (s *ExclusionSet) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *ExclusionSet) Len() int {
	return len(s.keys)
}

// AddTask indexes an existing task by its normalized key.
func (s *ExclusionSet) AddTask(t model.Task) {
	s.Add(DedupKey(t.Title, t.Description))
}

// FilterInput carries everything the candidate pipeline needs.
type FilterInput struct {
	Candidates    []CandidateTask
	ExcludeTitles []string
	Policy        PlatformPolicy
	DaySeen       *ExclusionSet
	WeekSeen      *ExclusionSet
}

// FilterCandidates runs the pipeline in its fixed order:
// normalize → exclude-by-title → banned-phrase → platform → dedup-by-key.
// First seen wins; survivors are recorded in both exclusion sets.
func FilterCandidates(in FilterInput) []CandidateTask {
	excludedTitles := make(map[string]struct{}, len(in.ExcludeTitles))
	for _, title := range in.ExcludeTitles {
		excludedTitles[strings.ToLower(strings.TrimSpace(title))] = struct{}{}
	}

	survivors := make([]CandidateTask, 0, len(in.Candidates))
	for _, raw := range in.Candidates {
		c := NormalizeCandidate(raw)
		if c.Title == "" {
			continue
		}
		if _, excluded := excludedTitles[strings.ToLower(c.Title)]; excluded {
			continue
		}
		if HasBannedPhrase(c.Title, c.Description) {
			continue
		}
		if !in.Policy.Allows(c.Platform) {
			continue
		}
		key := c.Key()
		if in.DaySeen.Has(key) || in.WeekSeen.Has(key) {
			continue
		}
		in.DaySeen.Add(key)
		in.WeekSeen.Add(key)
		survivors = append(survivors, c)
	}
	return survivors
}
