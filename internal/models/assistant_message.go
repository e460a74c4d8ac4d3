package models

// AssistantMessage is one turn of a stored assistant conversation.
type AssistantMessage struct {
	Role           string  `json:"role" bson:"role" validate:"oneof=user assistant system"`
	Content        *string `json:"content" bson:"content" validate:"required"`
	ConversationID *string `json:"conversation_id" bson:"conversation_id"`
	RelatedCaseID  *string `json:"related_case_id" bson:"related_case_id"`
}

func NewAssistantMessage() *AssistantMessage {
	return &AssistantMessage{Role: "user"}
}

func (m *AssistantMessage) ApplyDefaults() {}
