package plangen

import "strings"

// PlatformGuerrilla marks physical/creative low-cost actions. It is not a
// social channel, so the preferred-platform allow-list does not apply to it.
const PlatformGuerrilla = "guerrilla"

var platformAliases = map[string]string{
	"twitter":         "x",
	"twitter/x":       "x",
	"x.com":           "x",
	"x (twitter)":     "x",
	"ig":              "instagram",
	"insta":           "instagram",
	"fb":              "facebook",
	"facebook groups": "facebook",
	"linked in":       "linkedin",
	"yt":              "youtube",
	"tt":              "tiktok",
	"tik tok":         "tiktok",
}

// CanonicalPlatform lowercases, trims and maps free-text platform labels onto
// the small canonical vocabulary.
func CanonicalPlatform(raw string) string {
	p := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := platformAliases[p]; ok {
		return canonical
	}
	return p
}

// Tactics this product never recommends; matched against title+description.
var bannedPhrases = []string{
	"funnel",
	"webinar",
	"paid ads",
	"ad spend",
	"ppc",
	"landing page",
	"sales page",
}

// HasBannedPhrase reports whether the combined title+description references a
// banned tactic.
func HasBannedPhrase(title, description string) bool {
	combined := strings.ToLower(title + " " + description)
	for _, phrase := range bannedPhrases {
		if strings.Contains(combined, phrase) {
			return true
		}
	}
	return false
}

// PlatformPolicy applies the user's allow-list and avoid-list.
type PlatformPolicy struct {
	Preferred []string
	Avoid     []string
}

// NewPlatformPolicy canonicalizes both lists up front.
func NewPlatformPolicy(preferred, avoid []string) PlatformPolicy {
	return PlatformPolicy{
		Preferred: canonicalizeAll(preferred),
		Avoid:     canonicalizeAll(avoid),
	}
}

// Allows decides whether a candidate's platform passes the policy. An empty
// platform always passes. The avoid-list wins over everything, including the
// guerrilla exemption.
func (p PlatformPolicy) Allows(platform string) bool {
	platform = CanonicalPlatform(platform)
	if platform == "" {
		return true
	}
	for _, avoided := range p.Avoid {
		if platform == avoided {
			return false
		}
	}
	if platform == PlatformGuerrilla {
		return true
	}
	if len(p.Preferred) == 0 {
		return true
	}
	for _, preferred := range p.Preferred {
		if platform == preferred {
			return true
		}
	}
	return false
}

func canonicalizeAll(platforms []string) []string {
	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		if canonical := CanonicalPlatform(p); canonical != "" {
			out = append(out, canonical)
		}
	}
	return out
}
