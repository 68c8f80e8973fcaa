package plangen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"growthplan/internal/model"
)

type failingProfiles struct{}

func (failingProfiles) Get(context.Context, int) (*model.BusinessProfile, error) {
	return nil, errors.New("db down")
}

type failingFeedback struct{}

func (failingFeedback) Latest(context.Context, int) (*model.WeeklyFeedback, error) {
	return nil, errors.New("db down")
}

func TestAssembleCopiesProfileFields(t *testing.T) {
	store := &fakeTaskStore{}
	profiles := &fakeProfiles{profile: &model.BusinessProfile{
		ProductName:        "Acme Notes",
		ValueProp:          "zero-setup capture",
		TargetAudience:     "indie hackers",
		FocusArea:          "distribution",
		PreferredPlatforms: []string{"x", "linkedin"},
		AvoidPlatforms:     []string{"tiktok"},
		DesiredDailyTasks:  4,
	}}
	assembler := NewContextAssembler(profiles, store, fakeEngagement{}, fakeFeedback{}, zap.NewNop())

	signals := assembler.Assemble(context.Background(), 1, 1)

	assert.Equal(t, "Acme Notes", signals.ProductName)
	assert.Equal(t, "distribution", signals.FocusArea)
	assert.Equal(t, []string{"x", "linkedin"}, signals.PreferredPlatforms)
	assert.Equal(t, 4, signals.DesiredDailyTasks)
}

func TestAssembleIncludesRecentTaskWindow(t *testing.T) {
	store := &fakeTaskStore{tasks: []model.Task{
		{UserID: 1, Day: 5, Title: "Old task", Status: model.StatusCompleted},
		{UserID: 1, Day: 20, Title: "Too far in the future", Status: model.StatusPending},
		{UserID: 2, Day: 5, Title: "Other user", Status: model.StatusCompleted},
	}}
	assembler := NewContextAssembler(&fakeProfiles{}, store, fakeEngagement{}, fakeFeedback{}, zap.NewNop())

	signals := assembler.Assemble(context.Background(), 1, 10)

	require.Len(t, signals.RecentTasks, 1)
	assert.Equal(t, "Old task", signals.RecentTasks[0].Title)
	assert.Equal(t, model.StatusCompleted, signals.RecentTasks[0].Status)
}

func TestAssembleDegradesOnReadFailures(t *testing.T) {
	store := &fakeTaskStore{failList: true}
	assembler := NewContextAssembler(failingProfiles{}, store, fakeEngagement{}, failingFeedback{}, zap.NewNop())

	signals := assembler.Assemble(context.Background(), 1, 10)

	assert.Empty(t, signals.ProductName)
	assert.Empty(t, signals.RecentTasks)
	assert.Nil(t, signals.LatestFeedback)
}
