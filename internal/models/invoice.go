package models

// Invoice bills a client, optionally for a specific case. Items are
// free-form line entries ({description, hours, rate, amount} by convention).
type Invoice struct {
	ClientID *string          `json:"client_id" bson:"client_id" validate:"required"`
	CaseID   *string          `json:"case_id" bson:"case_id"`
	Number   *string          `json:"number" bson:"number"`
	Currency string           `json:"currency" bson:"currency" validate:"oneof=USD EUR GBP AUD CAD INR JPY CNY"`
	Items    []map[string]any `json:"items" bson:"items"`
	Status   string           `json:"status" bson:"status" validate:"oneof=draft sent paid overdue void"`
	IssuedAt *DateTime        `json:"issued_at" bson:"issued_at"`
	DueAt    *DateTime        `json:"due_at" bson:"due_at"`
	Notes    *string          `json:"notes" bson:"notes"`
	Total    *float64         `json:"total" bson:"total" validate:"omitempty,gte=0"`
}

func NewInvoice() *Invoice {
	return &Invoice{Currency: "USD", Status: "draft"}
}

func (i *Invoice) ApplyDefaults() {
	i.Items = emptyMapsIfNil(i.Items)
}
