package plangen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	contractsmq "growthplan/contracts/mq"
	"growthplan/internal/model"
)

// fakeTaskStore keeps tasks in memory with the same natural-key semantics as
// the database: (user_id, day, dedup_key) collisions are silently dropped.
type fakeTaskStore struct {
	mu         sync.Mutex
	tasks      []model.Task
	failInsert bool
	failList   bool
}

func (f *fakeTaskStore) InsertIgnoreDuplicate(_ context.Context, t *model.Task) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert {
		return false, errors.New("insert failed")
	}
	for _, existing := range f.tasks {
		if existing.UserID == t.UserID && existing.Day == t.Day && existing.DedupKey == t.DedupKey {
			return false, nil
		}
	}
	f.tasks = append(f.tasks, *t)
	return true, nil
}

func (f *fakeTaskStore) ListByDay(_ context.Context, userID, day int) ([]model.Task, error) {
	return f.listRange(userID, day, day)
}

func (f *fakeTaskStore) ListByWeek(_ context.Context, userID, week int) ([]model.Task, error) {
	first := model.FirstDayOfWeek(week)
	return f.listRange(userID, first, first+6)
}

func (f *fakeTaskStore) ListByDayRange(_ context.Context, userID, fromDay, toDay int) ([]model.Task, error) {
	return f.listRange(userID, fromDay, toDay)
}

func (f *fakeTaskStore) listRange(userID, fromDay, toDay int) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errors.New("list failed")
	}
	var out []model.Task
	for _, t := range f.tasks {
		if t.UserID == userID && t.Day >= fromDay && t.Day <= toDay {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

func (f *fakeTaskStore) markWeekAttempted(week int, attempted int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	first := model.FirstDayOfWeek(week)
	for i := range f.tasks {
		if attempted == 0 {
			return
		}
		if f.tasks[i].Day >= first && f.tasks[i].Day <= first+6 && f.tasks[i].Status == model.StatusPending {
			f.tasks[i].Status = model.StatusCompleted
			attempted--
		}
	}
}

type fakeGenerationClient struct {
	generate func(req GenerationRequest) ([]CandidateTask, error)
	calls    int
}

func (f *fakeGenerationClient) Generate(_ context.Context, req GenerationRequest) ([]CandidateTask, error) {
	f.calls++
	if f.generate == nil {
		return nil, ErrGeneratorUnavailable
	}
	return f.generate(req)
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []any
}

func (f *fakePublisher) Publish(_ string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, payload)
	return nil
}

type fakeLocker struct {
	denied   bool
	acquired int
	released int
}

func (f *fakeLocker) Acquire(_ context.Context, _, _ int) bool {
	if f.denied {
		return false
	}
	f.acquired++
	return true
}

func (f *fakeLocker) Release(_ context.Context, _, _ int) {
	f.released++
}

type fakeProfiles struct{ profile *model.BusinessProfile }

func (f *fakeProfiles) Get(_ context.Context, _ int) (*model.BusinessProfile, error) {
	return f.profile, nil
}

type fakeEngagement struct{}

func (fakeEngagement) ListRecent(_ context.Context, _, _ int) ([]model.EngagementRecord, error) {
	return nil, nil
}

type fakeFeedback struct{}

func (fakeFeedback) Latest(_ context.Context, _ int) (*model.WeeklyFeedback, error) {
	return nil, nil
}

func newTestSeeder(store *fakeTaskStore, client GenerationClient, publisher EventPublisher, lock Locker) *Seeder {
	logger := zap.NewNop()
	assembler := NewContextAssembler(&fakeProfiles{}, store, fakeEngagement{}, fakeFeedback{}, logger)
	return NewSeeder(store, assembler, client, publisher, lock, logger, 3, 0)
}

func uniqueTasksPerDay(req GenerationRequest) ([]CandidateTask, error) {
	out := make([]CandidateTask, 0, req.DesiredCount)
	for i := 0; i < req.DesiredCount; i++ {
		out = append(out, CandidateTask{
			Title:       fmt.Sprintf("Day %d task %d", req.Day, i+1),
			Description: fmt.Sprintf("Do thing %d for day %d", i+1, req.Day),
			Platform:    "x",
		})
	}
	return out, nil
}

func TestLoadDaySeedsWholeWeekLazily(t *testing.T) {
	store := &fakeTaskStore{}
	client := &fakeGenerationClient{generate: uniqueTasksPerDay}
	seeder := newTestSeeder(store, client, nil, nil)

	view := seeder.LoadDay(context.Background(), 1, 1)

	require.False(t, view.Locked)
	assert.Equal(t, 1, view.Week)
	require.Len(t, view.Tasks, 3)
	for _, task := range view.Tasks {
		assert.Equal(t, 1, task.Day)
		assert.Equal(t, model.StatusPending, task.Status)
		assert.Equal(t, model.SourceGenerated, task.Metadata.Source)
		assert.Equal(t, model.AlgorithmVersion, task.Metadata.AlgorithmVersion)
	}

	// the whole week was seeded, one generator call per day
	assert.Equal(t, 21, store.count())
	assert.Equal(t, 7, client.calls)
}

func TestLoadDayExistingTasksSkipSeeding(t *testing.T) {
	store := &fakeTaskStore{}
	client := &fakeGenerationClient{generate: uniqueTasksPerDay}
	seeder := newTestSeeder(store, client, nil, nil)

	seeder.LoadDay(context.Background(), 1, 1)
	callsAfterSeed := client.calls

	view := seeder.LoadDay(context.Background(), 1, 3)
	require.Len(t, view.Tasks, 3)
	assert.Equal(t, callsAfterSeed, client.calls, "no regeneration for a seeded week")
	assert.Equal(t, 21, store.count())
}

func TestEnsureWeekSeededIdempotent(t *testing.T) {
	store := &fakeTaskStore{}
	client := &fakeGenerationClient{generate: uniqueTasksPerDay}
	seeder := newTestSeeder(store, client, nil, nil)

	first := seeder.EnsureWeekSeeded(context.Background(), 1, 1)
	require.Len(t, first, 21)

	second := seeder.EnsureWeekSeeded(context.Background(), 1, 1)
	assert.Nil(t, second)
	assert.Equal(t, 21, store.count())
}

func TestEnsureWeekSeededRespectsLock(t *testing.T) {
	store := &fakeTaskStore{}
	client := &fakeGenerationClient{generate: uniqueTasksPerDay}
	lock := &fakeLocker{denied: true}
	seeder := newTestSeeder(store, client, nil, lock)

	tasks := seeder.EnsureWeekSeeded(context.Background(), 1, 1)
	assert.Nil(t, tasks)
	assert.Equal(t, 0, store.count())
	assert.Equal(t, 0, client.calls)
}

func TestEnsureWeekSeededReleasesLockAndPublishes(t *testing.T) {
	store := &fakeTaskStore{}
	client := &fakeGenerationClient{generate: uniqueTasksPerDay}
	publisher := &fakePublisher{}
	lock := &fakeLocker{}
	seeder := newTestSeeder(store, client, publisher, lock)

	seeder.EnsureWeekSeeded(context.Background(), 7, 1)

	assert.Equal(t, 1, lock.acquired)
	assert.Equal(t, 1, lock.released)
	require.Len(t, publisher.messages, 1)
	payload, ok := publisher.messages[0].(contractsmq.WeekSeededPayload)
	require.True(t, ok)
	assert.Equal(t, 7, payload.UserID)
	assert.Equal(t, 1, payload.Week)
	assert.Equal(t, 21, payload.TaskCount)
}

func TestSeedDayFillsDeficitWithFallback(t *testing.T) {
	store := &fakeTaskStore{}
	// one valid candidate plus two duplicates of it
	client := &fakeGenerationClient{generate: func(req GenerationRequest) ([]CandidateTask, error) {
		if req.Day != 1 {
			return uniqueTasksPerDay(req)
		}
		return []CandidateTask{
			{Title: "Post a customer story", Description: "tell it plainly", Platform: "x"},
			{Title: "post a customer story", Description: "tell it plainly", Platform: "x"},
			{Title: "POST A CUSTOMER STORY", Description: "tell it plainly", Platform: "x"},
		}, nil
	}}
	seeder := newTestSeeder(store, client, nil, nil)

	view := seeder.LoadDay(context.Background(), 1, 1)

	require.Len(t, view.Tasks, 3)
	assert.Equal(t, model.SourceGenerated, view.Tasks[0].Metadata.Source)
	assert.Equal(t, "Post a customer story", view.Tasks[0].Title)
	assert.Equal(t, model.SourceFallback, view.Tasks[1].Metadata.Source)
	assert.Equal(t, model.SourceFallback, view.Tasks[2].Metadata.Source)
}

func TestGeneratorFailureFillsDayFromFallback(t *testing.T) {
	store := &fakeTaskStore{}
	client := &fakeGenerationClient{} // always ErrGeneratorUnavailable
	seeder := newTestSeeder(store, client, nil, nil)

	view := seeder.LoadDay(context.Background(), 1, 1)

	require.Len(t, view.Tasks, 3)
	platforms := make([]string, 0, 3)
	for _, task := range view.Tasks {
		assert.Equal(t, model.SourceFallback, task.Metadata.Source)
		platforms = append(platforms, task.Platform)
	}
	// default rotation for day 1: (1+slot) % 3
	assert.Equal(t, []string{"linkedin", "reddit", "x"}, platforms)
}

func TestWeekGateLockedDayStillShowsPersistedTasks(t *testing.T) {
	store := &fakeTaskStore{}
	client := &fakeGenerationClient{generate: uniqueTasksPerDay}
	seeder := newTestSeeder(store, client, nil, nil)

	seeder.EnsureWeekSeeded(context.Background(), 1, 1)
	// a stray task already exists in the locked week
	store.tasks = append(store.tasks, model.Task{
		ID: "manual-1", UserID: 1, Day: 8, Title: "Manually added",
		DedupKey: "manually added|", Status: model.StatusPending,
	})

	view := seeder.LoadDay(context.Background(), 1, 8)

	assert.True(t, view.Locked)
	assert.NotEmpty(t, view.Message)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "Manually added", view.Tasks[0].Title)
	assert.Equal(t, 22, store.count(), "locked week is never seeded")
}

func TestWeekGateHalfAttemptedViewsButDoesNotSeed(t *testing.T) {
	store := &fakeTaskStore{}
	client := &fakeGenerationClient{generate: uniqueTasksPerDay}
	seeder := newTestSeeder(store, client, nil, nil)

	seeder.EnsureWeekSeeded(context.Background(), 1, 1)
	store.markWeekAttempted(1, 11) // just over half of 21

	view := seeder.LoadDay(context.Background(), 1, 8)

	assert.False(t, view.Locked, "50% attempted unlocks viewing")
	assert.Empty(t, view.Tasks, "adaptive seeding still requires full attempt")
	assert.Equal(t, 21, store.count())
}

func TestWeekGateFullyAttemptedSeedsNextWeek(t *testing.T) {
	store := &fakeTaskStore{}
	client := &fakeGenerationClient{generate: uniqueTasksPerDay}
	seeder := newTestSeeder(store, client, nil, nil)

	seeder.EnsureWeekSeeded(context.Background(), 1, 1)
	store.markWeekAttempted(1, 21)

	view := seeder.LoadDay(context.Background(), 1, 8)

	assert.False(t, view.Locked)
	require.Len(t, view.Tasks, 3)
	assert.Equal(t, 42, store.count())
}

func TestPersistenceFailureStillReturnsTasks(t *testing.T) {
	store := &fakeTaskStore{failInsert: true}
	client := &fakeGenerationClient{generate: uniqueTasksPerDay}
	seeder := newTestSeeder(store, client, nil, nil)

	tasks := seeder.EnsureWeekSeeded(context.Background(), 1, 1)

	require.Len(t, tasks, 21, "in-memory result survives write failures")
	assert.Equal(t, 0, store.count())
}

func TestGenerateDayExcludesWeekTitles(t *testing.T) {
	store := &fakeTaskStore{}
	var lastExcludes []string
	client := &fakeGenerationClient{generate: func(req GenerationRequest) ([]CandidateTask, error) {
		lastExcludes = req.ExcludeTitles
		return uniqueTasksPerDay(req)
	}}
	seeder := newTestSeeder(store, client, nil, nil)

	seeder.EnsureWeekSeeded(context.Background(), 1, 1)
	view := seeder.GenerateDay(context.Background(), 1, 2)

	assert.Contains(t, lastExcludes, "Day 1 task 1")
	assert.Contains(t, lastExcludes, "Day 7 task 3")
	// existing day tasks plus freshly generated ones
	assert.Greater(t, len(view.Tasks), 3)
}

func TestImportPlanPersistsParsedSections(t *testing.T) {
	store := &fakeTaskStore{}
	seeder := newTestSeeder(store, &fakeGenerationClient{}, nil, nil)

	text := `Day 3: Outreach
- Reply to five founders on X
- Reply to five founders on X

Week 2: Scale up
- Batch-write three posts
`
	tasks := seeder.ImportPlan(context.Background(), 1, text)

	require.Len(t, tasks, 2)
	assert.Equal(t, 3, tasks[0].Day)
	assert.Equal(t, "Reply to five founders on X", tasks[0].Title)
	assert.Equal(t, model.SourcePlanParsed, tasks[0].Metadata.Source)
	assert.Equal(t, 8, tasks[1].Day, "week sections land on the first day of the week")
	assert.Equal(t, 2, store.count())
}
