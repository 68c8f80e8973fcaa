package plangen

import (
	"strings"

	"growthplan/internal/model"
)

// fallbackTemplate renders with {product}, {value_prop}, {audience} and
// {platform} substituted from the user's profile.
type fallbackTemplate struct {
	category    string
	taskType    string
	title       string
	description string
}

var fallbackTemplates = []fallbackTemplate{
	{
		category:    model.CategoryContent,
		taskType:    model.TypeExploit,
		title:       "Share one customer insight on {platform}",
		description: "Write a short post for {platform} about one real problem {audience} face and how {product} handles it. Keep it under 100 words and end with a question.",
	},
	{
		category:    model.CategoryCommunity,
		taskType:    model.TypeExplore,
		title:       "Join one active {platform} conversation",
		description: "Find a thread on {platform} where {audience} are discussing the problem {product} solves. Leave a genuinely helpful reply without pitching. Note the thread link.",
	},
	{
		category:    model.CategoryEngagement,
		taskType:    model.TypeExploit,
		title:       "Reply to five posts from {audience} on {platform}",
		description: "Spend 15 minutes on {platform} replying to five recent posts from {audience}. Add one concrete tip per reply, drawn from {value_prop}.",
	},
	{
		category:    model.CategoryAnalytics,
		taskType:    model.TypeExploit,
		title:       "Review yesterday's numbers for {platform}",
		description: "Check views, replies and profile visits from your last {platform} activity. Write down the single best-performing item and why you think it worked.",
	},
	{
		category:    model.CategoryContent,
		taskType:    model.TypeExplore,
		title:       "Draft a contrarian take for {platform}",
		description: "Write one post for {platform} that challenges common advice given to {audience}. Tie the alternative back to {value_prop}.",
	},
	{
		category:    model.CategoryStrategy,
		taskType:    model.TypeExplore,
		title:       "List three places {audience} gather outside {platform}",
		description: "Spend 15 minutes finding three communities, newsletters or forums where {audience} spend time. Rank them by how easy it is for {product} to show up there.",
	},
	{
		category:    model.CategoryEngagement,
		taskType:    model.TypeExploit,
		title:       "Follow up with one warm contact from {platform}",
		description: "Pick one person who engaged with you on {platform} this week and send a short, personal follow-up. No pitch, one useful link or idea.",
	},
	{
		category:    model.CategoryCommunity,
		taskType:    model.TypeExploit,
		title:       "Answer one question from {audience} on {platform}",
		description: "Find one unanswered question on {platform} from {audience} and write the most complete answer in the thread. Mention {product} only if directly relevant.",
	},
}

// guerrillaTemplate replaces the rotation slot whenever the platform lands on
// "guerrilla": those tasks must describe a physical, low-cost action with a
// measurable hook, not a social post.
var guerrillaTemplate = fallbackTemplate{
	category:    model.CategoryCommunity,
	taskType:    model.TypeExplore,
	title:       "Run one small real-world experiment for {product}",
	description: "Put {product} in front of {audience} offline: a flyer with a QR code in a spot they frequent, a sticker, or a hand-written note on a community board. Count scans or mentions so you can measure it.",
}

// defaultFallbackPlatforms is the fixed rotation used when the profile names
// neither preferred nor researched platforms.
var defaultFallbackPlatforms = []string{"x", "linkedin", "reddit"}

// FallbackPlatforms derives the platform rotation: preferred platforms, else
// researched ones, else the fixed default set. The avoid-list is always
// removed first.
func FallbackPlatforms(signals model.ContextSignals) []string {
	avoid := canonicalizeAll(signals.AvoidPlatforms)

	for _, source := range [][]string{
		canonicalizeAll(signals.PreferredPlatforms),
		canonicalizeAll(signals.ResearchedPlatforms),
		defaultFallbackPlatforms,
	} {
		filtered := withoutAvoided(source, avoid)
		if len(filtered) > 0 {
			return filtered
		}
	}

	// 全部被 avoid 列表挡住时退回默认集合，合成器必须总能产出
	return defaultFallbackPlatforms
}

func withoutAvoided(platforms, avoid []string) []string {
	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		avoided := false
		for _, a := range avoid {
			if p == a {
				avoided = true
				break
			}
		}
		if !avoided {
			out = append(out, p)
		}
	}
	return out
}

// SynthesizeFallback deterministically produces exactly count candidates for
// the given day. Pure function of its inputs; it never fails.
func SynthesizeFallback(signals model.ContextSignals, day, count int) []CandidateTask {
	if count <= 0 {
		return nil
	}

	platforms := FallbackPlatforms(signals)
	out := make([]CandidateTask, 0, count)
	for slot := 0; slot < count; slot++ {
		platform := platforms[(day+slot)%len(platforms)]
		tpl := fallbackTemplates[slot%len(fallbackTemplates)]
		if platform == PlatformGuerrilla {
			tpl = guerrillaTemplate
		}
		out = append(out, CandidateTask{
			Title:       renderTemplate(tpl.title, signals, platform),
			Description: renderTemplate(tpl.description, signals, platform),
			Category:    tpl.category,
			Platform:    platform,
			Type:        tpl.taskType,
		})
	}
	return out
}

func renderTemplate(text string, signals model.ContextSignals, platform string) string {
	product := signals.ProductName
	if product == "" {
		product = "your product"
	}
	audience := signals.TargetAudience
	if audience == "" {
		audience = "your target customers"
	}
	valueProp := signals.ValueProp
	if valueProp == "" {
		valueProp = "what makes your product different"
	}

	r := strings.NewReplacer(
		"{product}", product,
		"{audience}", audience,
		"{value_prop}", valueProp,
		"{platform}", platform,
	)
	return r.Replace(text)
}
