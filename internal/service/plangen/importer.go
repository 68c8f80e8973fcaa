package plangen

import (
	"context"

	"go.uber.org/zap"

	"growthplan/internal/model"
	"growthplan/pkg/metrics"
)

// ImportPlan parses a long-form plan document and persists its sections as
// tasks. Day sections land on their day; week and month sections land on the
// first day of their bucket. Duplicate raw tasks collapse via the same
// natural-key upsert the seeder uses.
func (s *Seeder) ImportPlan(ctx context.Context, userID int, text string) []model.Task {
	doc := ParsePlanDocument(text)

	var tasks []model.Task
	seen := NewExclusionSet()
	for _, section := range doc.Sections {
		day := 0
		switch section.Kind {
		case SectionDay:
			day = section.Index
		case SectionWeek:
			day = model.FirstDayOfWeek(section.Index)
		case SectionMonth:
			day = model.FirstDayOfMonth(section.Index)
		}
		if day < 1 {
			continue
		}

		for _, raw := range section.RawTasks {
			c := NormalizeCandidate(CandidateTask{Title: raw})
			if c.Title == "" || seen.Has(c.Key()) {
				continue
			}
			seen.Add(c.Key())
			tasks = append(tasks, s.newTask(userID, day, c, model.SourcePlanParsed))
		}
	}

	for i := range tasks {
		inserted, err := s.store.InsertIgnoreDuplicate(ctx, &tasks[i])
		if err != nil {
			s.logger.Error("Plan import: task persistence failed",
				zap.Int("user_id", userID),
				zap.String("title", tasks[i].Title),
				zap.Error(err),
			)
			continue
		}
		if inserted {
			metrics.IncrementTaskGeneration(model.SourcePlanParsed)
		}
	}

	s.logger.Info("Plan document imported",
		zap.Int("user_id", userID),
		zap.Int("sections", len(doc.Sections)),
		zap.Int("tasks", len(tasks)),
	)
	return tasks
}
