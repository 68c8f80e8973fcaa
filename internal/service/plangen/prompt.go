package plangen

import (
	"fmt"
	"strings"
)

// BuildDailyPrompt renders a GenerationRequest into the prompt sent to an
// LLM backend. The response-shape instruction matches what ParseCandidates
// accepts.
func BuildDailyPrompt(req GenerationRequest) string {
	var b strings.Builder

	b.WriteString("You are a marketing coach for a small business. Propose concrete, low-cost marketing tasks for one day.\n\n")

	s := req.Signals
	if s.ProductName != "" {
		fmt.Fprintf(&b, "Product: %s\n", s.ProductName)
	}
	if s.ValueProp != "" {
		fmt.Fprintf(&b, "Value proposition: %s\n", s.ValueProp)
	}
	if s.TargetAudience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", s.TargetAudience)
	}
	if req.FocusArea != "" {
		fmt.Fprintf(&b, "Current focus: %s\n", req.FocusArea)
	}
	if len(s.Goals) > 0 {
		fmt.Fprintf(&b, "Goals: %s\n", strings.Join(s.Goals, "; "))
	}
	if len(s.Milestones) > 0 {
		fmt.Fprintf(&b, "Milestones: %s\n", strings.Join(s.Milestones, "; "))
	}
	if len(s.PreferredPlatforms) > 0 {
		fmt.Fprintf(&b, "Only use these platforms: %s\n", strings.Join(s.PreferredPlatforms, ", "))
	}
	if len(s.AvoidPlatforms) > 0 {
		fmt.Fprintf(&b, "Never use these platforms: %s\n", strings.Join(s.AvoidPlatforms, ", "))
	}

	if len(s.RecentTasks) > 0 {
		b.WriteString("\nRecent task history (day, title, status):\n")
		for _, t := range s.RecentTasks {
			fmt.Fprintf(&b, "- day %d: %s (%s)\n", t.Day, t.Title, t.Status)
		}
	}
	if len(s.Engagement) > 0 {
		b.WriteString("\nRecent content performance:\n")
		for _, e := range s.Engagement {
			fmt.Fprintf(&b, "- %s %s: %d views, %d likes, %d replies\n",
				e.Platform, e.ContentType, e.Views, e.Likes, e.Replies)
		}
	}
	if s.LatestFeedback != nil {
		fmt.Fprintf(&b, "\nUser's last weekly review — went well: %s; struggled: %s; wants to focus on: %s\n",
			s.LatestFeedback.WentWell, s.LatestFeedback.Struggled, s.LatestFeedback.NextFocus)
	}
	if len(req.ExcludeTitles) > 0 {
		b.WriteString("\nDo NOT repeat any of these task titles:\n")
		for _, title := range req.ExcludeTitles {
			fmt.Fprintf(&b, "- %s\n", title)
		}
	}

	fmt.Fprintf(&b, "\nThis is day %d (week %d, month %d) of the plan. Propose exactly %d tasks.\n",
		req.Day, req.Week, req.Month, req.DesiredCount)
	b.WriteString(`Respond with JSON only, no prose, in this shape:
{"tasks":[{"title":"...","description":"...","category":"content|analytics|community|strategy|engagement","platform":"...","impact":"...","tips":["..."],"type":"exploit|explore"}]}
`)
	return b.String()
}
