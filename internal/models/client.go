package models

// Client is a person or organization the practice represents.
type Client struct {
	Name    *string `json:"name" bson:"name" validate:"required"`
	Email   *string `json:"email" bson:"email"`
	Phone   *string `json:"phone" bson:"phone"`
	Address *string `json:"address" bson:"address"`
	Type    string  `json:"type" bson:"type" validate:"oneof=individual organization"`
	Notes   *string `json:"notes" bson:"notes"`
	Status  string  `json:"status" bson:"status" validate:"oneof=active inactive prospect"`
}

func NewClient() *Client {
	return &Client{Type: "individual", Status: "active"}
}

func (c *Client) ApplyDefaults() {}
