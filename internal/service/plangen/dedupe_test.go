package plangen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growthplan/internal/model"
)

func TestFilterCandidatesPipeline(t *testing.T) {
	daySeen := NewExclusionSet()
	weekSeen := NewExclusionSet()

	survivors := FilterCandidates(FilterInput{
		Candidates: []CandidateTask{
			{Title: "Share a customer insight on X", Description: "short post", Platform: "twitter"},
			{Title: "  "},
			{Title: "Already done task", Description: "anything", Platform: "x"},
			{Title: "Build a funnel page", Description: "classic funnel", Platform: "x"},
			{Title: "Post on TikTok", Description: "dance", Platform: "tiktok"},
			{Title: "share a customer insight on x", Description: "short post", Platform: "x"},
			{Title: "Reply to a thread", Description: "be useful", Platform: "x"},
		},
		ExcludeTitles: []string{"already done task"},
		Policy:        NewPlatformPolicy(nil, []string{"tiktok"}),
		DaySeen:       daySeen,
		WeekSeen:      weekSeen,
	})

	require.Len(t, survivors, 2)
	assert.Equal(t, "Share a customer insight on X", survivors[0].Title)
	assert.Equal(t, "x", survivors[0].Platform)
	assert.Equal(t, "Reply to a thread", survivors[1].Title)

	// survivors are recorded in both sets
	assert.Equal(t, 2, daySeen.Len())
	assert.Equal(t, 2, weekSeen.Len())
	assert.True(t, weekSeen.Has(survivors[0].Key()))
}

func TestFilterCandidatesFirstSeenWins(t *testing.T) {
	daySeen := NewExclusionSet()
	weekSeen := NewExclusionSet()

	survivors := FilterCandidates(FilterInput{
		Candidates: []CandidateTask{
			{Title: "Post on X", Description: "first version", Platform: "x"},
			{Title: "POST ON X", Description: "first version", Platform: "x"},
		},
		DaySeen:  daySeen,
		WeekSeen: weekSeen,
	})

	require.Len(t, survivors, 1)
	assert.Equal(t, "Post on X", survivors[0].Title)
}

func TestFilterCandidatesRespectsPriorWeekSeen(t *testing.T) {
	daySeen := NewExclusionSet()
	weekSeen := NewExclusionSet()
	weekSeen.AddTask(model.Task{Title: "Post on X", Description: "earlier this week"})

	survivors := FilterCandidates(FilterInput{
		Candidates: []CandidateTask{
			{Title: "Post on X", Description: "earlier this week", Platform: "x"},
			{Title: "Something new", Description: "fresh", Platform: "x"},
		},
		DaySeen:  daySeen,
		WeekSeen: weekSeen,
	})

	require.Len(t, survivors, 1)
	assert.Equal(t, "Something new", survivors[0].Title)
}
