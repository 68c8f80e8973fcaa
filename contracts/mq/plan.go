package mq

// Routing keys on the events exchange.
const (
	RoutingKeyWeekSeeded    = "plan.week.seeded"
	RoutingKeyTaskCompleted = "task.completed"
)

type WeekSeededPayload struct {
	UserID    int `json:"user_id"`
	Week      int `json:"week"`
	TaskCount int `json:"task_count"`
}

type TaskCompletedPayload struct {
	TaskID string `json:"task_id"`
	UserID int    `json:"user_id"`
	Title  string `json:"title"`
	Day    int    `json:"day"`
}
