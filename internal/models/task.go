package models

// Task is a unit of work, optionally attached to a case.
// Checklist entries are free-form ({text, done} by convention).
type Task struct {
	CaseID      *string          `json:"case_id" bson:"case_id"`
	Title       *string          `json:"title" bson:"title" validate:"required"`
	Description *string          `json:"description" bson:"description"`
	AssigneeID  *string          `json:"assignee_id" bson:"assignee_id"`
	Status      string           `json:"status" bson:"status" validate:"oneof=todo in_progress done"`
	Priority    string           `json:"priority" bson:"priority" validate:"oneof=low medium high urgent"`
	DueDate     *DateTime        `json:"due_date" bson:"due_date"`
	Checklist   []map[string]any `json:"checklist" bson:"checklist"`
}

func NewTask() *Task {
	return &Task{Status: "todo", Priority: "medium"}
}

func (t *Task) ApplyDefaults() {
	t.Checklist = emptyMapsIfNil(t.Checklist)
}
