package models

// Case is a legal matter opened for a client. ClientID is not checked
// against the client collection.
type Case struct {
	Title        *string   `json:"title" bson:"title" validate:"required"`
	Description  *string   `json:"description" bson:"description"`
	ClientID     *string   `json:"client_id" bson:"client_id" validate:"required"`
	MatterNumber *string   `json:"matter_number" bson:"matter_number"`
	PracticeArea *string   `json:"practice_area" bson:"practice_area"`
	Status       string    `json:"status" bson:"status" validate:"oneof=open closed on_hold"`
	Priority     string    `json:"priority" bson:"priority" validate:"oneof=low medium high urgent"`
	OpenedAt     *DateTime `json:"opened_at" bson:"opened_at"`
	ClosedAt     *DateTime `json:"closed_at" bson:"closed_at"`
	Assignees    []string  `json:"assignees" bson:"assignees"`
	Tags         []string  `json:"tags" bson:"tags"`
}

func NewCase() *Case {
	return &Case{Status: "open", Priority: "medium"}
}

func (c *Case) ApplyDefaults() {
	c.Assignees = emptyIfNil(c.Assignees)
	c.Tags = emptyIfNil(c.Tags)
}
