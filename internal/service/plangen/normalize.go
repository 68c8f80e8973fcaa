package plangen

import (
	"fmt"
	"regexp"
	"strings"

	"growthplan/internal/model"
)

// titleSeparatorRe matches a hyphen/en-dash/em-dash separator followed by a
// word, used to split a combined "Title - description" into two fields.
var titleSeparatorRe = regexp.MustCompile(`\s+[-–—]+\s*(\S)`)

// NormalizeCandidate canonicalizes a candidate in place: trimmed title, a
// never-empty description (split from the title, or a default timeboxed
// instruction), lowercased platform, and a valid category/type.
func NormalizeCandidate(c CandidateTask) CandidateTask {
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)

	if c.Description == "" {
		if loc := titleSeparatorRe.FindStringSubmatchIndex(c.Title); loc != nil {
			// loc[2] 是分隔符后第一个非空白字符的位置
			c.Description = strings.TrimSpace(c.Title[loc[2]:])
			c.Title = strings.TrimSpace(c.Title[:loc[0]])
		}
	}
	if c.Description == "" {
		c.Description = fmt.Sprintf("Spend 15 focused minutes on this today: %s.", c.Title)
	}

	c.Platform = CanonicalPlatform(c.Platform)
	c.Category = normalizeCategory(c.Category)
	c.Type = normalizeType(c.Type)
	return c
}

// DedupKey derives the stable key used for all repeat suppression.
func DedupKey(title, description string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(description))
}

func (c CandidateTask) Key() string {
	return DedupKey(c.Title, c.Description)
}

func normalizeCategory(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case model.CategoryContent:
		return model.CategoryContent
	case model.CategoryAnalytics:
		return model.CategoryAnalytics
	case model.CategoryCommunity:
		return model.CategoryCommunity
	case model.CategoryStrategy:
		return model.CategoryStrategy
	case model.CategoryEngagement:
		return model.CategoryEngagement
	default:
		return model.CategoryContent
	}
}

func normalizeType(raw string) string {
	if strings.ToLower(strings.TrimSpace(raw)) == model.TypeExplore {
		return model.TypeExplore
	}
	return model.TypeExploit
}
