package plangen

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	contractsmq "growthplan/contracts/mq"
	"growthplan/internal/model"
	"growthplan/pkg/metrics"
)

// TaskStore is the persistence collaborator. Inserts must be idempotent by
// the natural key (user, day, dedup key) so that a concurrent double-seed
// degenerates to a no-op instead of duplicate rows.
type TaskStore interface {
	ListByDay(ctx context.Context, userID, day int) ([]model.Task, error)
	ListByWeek(ctx context.Context, userID, week int) ([]model.Task, error)
	InsertIgnoreDuplicate(ctx context.Context, t *model.Task) (bool, error)
}

// EventPublisher is satisfied by pkg/mq.Publisher. Publishing is best-effort.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// Locker is satisfied by pkg/util.SeedLock.
type Locker interface {
	Acquire(ctx context.Context, userID, week int) bool
	Release(ctx context.Context, userID, week int)
}

// DayView is what the day endpoint renders. Locked is informational, never an
// error; a locked view still carries whatever tasks are already persisted.
type DayView struct {
	Day     int          `json:"day"`
	Week    int          `json:"week"`
	Locked  bool         `json:"locked"`
	Message string       `json:"message,omitempty"`
	Tasks   []model.Task `json:"tasks"`
}

// Seeder orchestrates gate evaluation, lazy week seeding and per-day
// generation. Generation happens only on demand; there is no background
// scheduler.
type Seeder struct {
	store     TaskStore
	assembler *ContextAssembler
	client    GenerationClient
	publisher EventPublisher // optional
	lock      Locker         // optional
	logger    *zap.Logger

	desiredPerDay int
	seedDelay     time.Duration
}

func NewSeeder(
	store TaskStore,
	assembler *ContextAssembler,
	client GenerationClient,
	publisher EventPublisher,
	lock Locker,
	logger *zap.Logger,
	desiredPerDay int,
	seedDelay time.Duration,
) *Seeder {
	if desiredPerDay <= 0 {
		desiredPerDay = 3
	}
	return &Seeder{
		store:         store,
		assembler:     assembler,
		client:        client,
		publisher:     publisher,
		lock:          lock,
		logger:        logger,
		desiredPerDay: desiredPerDay,
		seedDelay:     seedDelay,
	}
}

// LoadDay serves a day view. Locked weeks still show already-persisted tasks
// (historical data is never hidden); unlocked weeks are lazily seeded on
// first view. Nothing on this path returns an error to the caller.
func (s *Seeder) LoadDay(ctx context.Context, userID, day int) *DayView {
	week := model.WeekOf(day)
	gate := s.evaluateGate(ctx, userID, week)

	if !gate.Viewable {
		metrics.IncrementGateDecision("locked")
		s.logger.Info("Day view gated",
			zap.Int("user_id", userID),
			zap.Int("day", day),
			zap.Int("week", week),
			zap.Float64("attempted_ratio", gate.AttemptedRatio),
		)
		return &DayView{
			Day:     day,
			Week:    week,
			Locked:  true,
			Message: gate.Message,
			Tasks:   s.listDayBestEffort(ctx, userID, day),
		}
	}
	metrics.IncrementGateDecision("unlocked")

	tasks := s.listDayBestEffort(ctx, userID, day)
	if len(tasks) == 0 {
		seeded := s.EnsureWeekSeeded(ctx, userID, week)
		for _, t := range seeded {
			if t.Day == day {
				tasks = append(tasks, t)
			}
		}
		if len(tasks) == 0 {
			// 另一个请求在播种，或者上周还没 100% 完成
			tasks = s.listDayBestEffort(ctx, userID, day)
		}
	}

	return &DayView{Day: day, Week: week, Tasks: tasks}
}

// EnsureWeekSeeded populates a week's tasks if and only if the week is empty
// and the prior week is fully attempted (stricter than the 50% view
// threshold). Idempotent: re-invocations are no-ops. Returns the in-memory
// task set when it did seed, nil otherwise.
func (s *Seeder) EnsureWeekSeeded(ctx context.Context, userID, week int) []model.Task {
	existing, err := s.store.ListByWeek(ctx, userID, week)
	if err != nil {
		s.logger.Error("Week seed: existing-task read failed, treating week as empty",
			zap.Int("user_id", userID),
			zap.Int("week", week),
			zap.Error(err),
		)
	}
	if len(existing) > 0 {
		s.logger.Debug("Week already seeded",
			zap.Int("user_id", userID),
			zap.Int("week", week),
			zap.Int("task_count", len(existing)),
		)
		return nil
	}

	gate := s.evaluateGate(ctx, userID, week)
	if !gate.ReadyForAdaptive {
		s.logger.Info("Week seed skipped: prior week not fully attempted",
			zap.Int("user_id", userID),
			zap.Int("week", week),
			zap.Float64("attempted_ratio", gate.AttemptedRatio),
		)
		return nil
	}

	if s.lock != nil {
		if !s.lock.Acquire(ctx, userID, week) {
			s.logger.Info("Week seed skipped: another request holds the seed lock",
				zap.Int("user_id", userID),
				zap.Int("week", week),
			)
			return nil
		}
		defer s.lock.Release(ctx, userID, week)
	}

	firstDay := model.FirstDayOfWeek(week)
	signals := s.assembler.Assemble(ctx, userID, firstDay)

	weekSeen := NewExclusionSet()
	excludeTitles := make([]string, 0, len(signals.RecentTasks))
	for _, t := range signals.RecentTasks {
		excludeTitles = append(excludeTitles, t.Title)
	}

	var all []model.Task
	for day := firstDay; day < firstDay+7; day++ {
		// 顺序生成 + 小间隔，避免打爆生成服务的限流
		if day > firstDay && s.seedDelay > 0 {
			time.Sleep(s.seedDelay)
		}
		tasks := s.seedDay(ctx, userID, day, signals, weekSeen, excludeTitles)
		for _, t := range tasks {
			excludeTitles = append(excludeTitles, t.Title)
		}
		all = append(all, tasks...)
	}

	s.logger.Info("Week seeded",
		zap.Int("user_id", userID),
		zap.Int("week", week),
		zap.Int("task_count", len(all)),
	)

	if s.publisher != nil {
		payload := contractsmq.WeekSeededPayload{UserID: userID, Week: week, TaskCount: len(all)}
		if err := s.publisher.Publish(contractsmq.RoutingKeyWeekSeeded, payload); err != nil {
			s.logger.Error("Failed to publish plan.week.seeded event",
				zap.Int("user_id", userID),
				zap.Int("week", week),
				zap.Error(err),
			)
		}
	}

	return all
}

// GenerateDay regenerates tasks for one day on demand, excluding titles
// already used earlier in the same week. The returned view contains existing
// plus newly generated tasks.
func (s *Seeder) GenerateDay(ctx context.Context, userID, day int) *DayView {
	week := model.WeekOf(day)
	gate := s.evaluateGate(ctx, userID, week)
	if !gate.Viewable {
		metrics.IncrementGateDecision("locked")
		return &DayView{
			Day:     day,
			Week:    week,
			Locked:  true,
			Message: gate.Message,
			Tasks:   s.listDayBestEffort(ctx, userID, day),
		}
	}
	metrics.IncrementGateDecision("unlocked")

	weekTasks, err := s.store.ListByWeek(ctx, userID, week)
	if err != nil {
		s.logger.Error("Day generation: week read failed, proceeding with empty exclusions",
			zap.Int("user_id", userID),
			zap.Int("week", week),
			zap.Error(err),
		)
		weekTasks = nil
	}

	weekSeen := NewExclusionSet()
	excludeTitles := make([]string, 0, len(weekTasks))
	var existing []model.Task
	for _, t := range weekTasks {
		weekSeen.AddTask(t)
		excludeTitles = append(excludeTitles, t.Title)
		if t.Day == day {
			existing = append(existing, t)
		}
	}

	signals := s.assembler.Assemble(ctx, userID, day)
	generated := s.seedDay(ctx, userID, day, signals, weekSeen, excludeTitles)

	return &DayView{Day: day, Week: week, Tasks: append(existing, generated...)}
}

// seedDay runs the full per-day pipeline: generate → normalize → exclude →
// filter → dedup → fallback fill → persist. A generator failure mid-pipeline
// still yields a best-effort full day; a persistence failure still returns
// the in-memory result.
func (s *Seeder) seedDay(
	ctx context.Context,
	userID, day int,
	signals model.ContextSignals,
	weekSeen *ExclusionSet,
	excludeTitles []string,
) []model.Task {
	desired := signals.DesiredDailyTasks
	if desired <= 0 {
		desired = s.desiredPerDay
	}

	req := GenerationRequest{
		Signals:       signals,
		Day:           day,
		Week:          model.WeekOf(day),
		Month:         model.MonthOf(day),
		FocusArea:     signals.FocusArea,
		DesiredCount:  desired,
		ExcludeTitles: excludeTitles,
	}

	candidates, err := s.client.Generate(ctx, req)
	if err != nil {
		// 不重试：生成失败直接用 fallback 填满
		s.logger.Warn("Generator failed, filling day from fallback templates",
			zap.Int("user_id", userID),
			zap.Int("day", day),
			zap.Error(err),
		)
		candidates = nil
	}

	daySeen := NewExclusionSet()
	survivors := FilterCandidates(FilterInput{
		Candidates:    candidates,
		ExcludeTitles: excludeTitles,
		Policy:        NewPlatformPolicy(signals.PreferredPlatforms, signals.AvoidPlatforms),
		DaySeen:       daySeen,
		WeekSeen:      weekSeen,
	})
	if len(survivors) > desired {
		survivors = survivors[:desired]
	}

	tasks := make([]model.Task, 0, desired)
	for _, c := range survivors {
		tasks = append(tasks, s.newTask(userID, day, c, model.SourceGenerated))
	}

	deficit := desired - len(survivors)
	for _, c := range SynthesizeFallback(signals, day, deficit) {
		key := c.Key()
		daySeen.Add(key)
		weekSeen.Add(key)
		tasks = append(tasks, s.newTask(userID, day, c, model.SourceFallback))
	}

	for i := range tasks {
		inserted, err := s.store.InsertIgnoreDuplicate(ctx, &tasks[i])
		if err != nil {
			// Best-effort durability: 返回内存结果，写失败只记日志
			s.logger.Error("Task persistence failed, returning in-memory task",
				zap.Int("user_id", userID),
				zap.Int("day", day),
				zap.String("title", tasks[i].Title),
				zap.Error(err),
			)
			continue
		}
		if !inserted {
			s.logger.Debug("Task already persisted by a concurrent seed",
				zap.Int("user_id", userID),
				zap.Int("day", day),
				zap.String("title", tasks[i].Title),
			)
			continue
		}
		metrics.IncrementTaskGeneration(tasks[i].Metadata.Source)
	}

	s.logger.Info("Day seeded",
		zap.Int("user_id", userID),
		zap.Int("day", day),
		zap.Int("generated", len(survivors)),
		zap.Int("fallback", deficit),
	)
	return tasks
}

func (s *Seeder) newTask(userID, day int, c CandidateTask, source string) model.Task {
	return model.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Platform:    c.Platform,
		Status:      model.StatusPending,
		Day:         day,
		Type:        c.Type,
		Impact:      c.Impact,
		Tips:        c.Tips,
		DedupKey:    c.Key(),
		Metadata: model.TaskMetadata{
			Source:           source,
			AlgorithmVersion: model.AlgorithmVersion,
		},
		CreatedAt: time.Now(),
	}
}

func (s *Seeder) evaluateGate(ctx context.Context, userID, week int) GateStatus {
	if week <= 1 {
		return EvaluateGate(week, nil)
	}
	prior, err := s.store.ListByWeek(ctx, userID, week-1)
	if err != nil {
		// 读失败按空周处理：锁定但不报错，day view 永远能渲染
		s.logger.Error("Gate evaluation: prior week read failed, treating as empty",
			zap.Int("user_id", userID),
			zap.Int("week", week),
			zap.Error(err),
		)
		prior = nil
	}
	return EvaluateGate(week, prior)
}

func (s *Seeder) listDayBestEffort(ctx context.Context, userID, day int) []model.Task {
	tasks, err := s.store.ListByDay(ctx, userID, day)
	if err != nil {
		s.logger.Error("Day read failed, rendering empty day",
			zap.Int("user_id", userID),
			zap.Int("day", day),
			zap.Error(err),
		)
		return nil
	}
	return tasks
}
