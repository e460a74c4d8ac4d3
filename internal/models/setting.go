package models

// Setting is an org-wide or per-user configuration entry. UserID is expected
// when Scope is "user" but is not enforced.
type Setting struct {
	Key    *string        `json:"key" bson:"key" validate:"required"`
	Value  map[string]any `json:"value" bson:"value"`
	Scope  string         `json:"scope" bson:"scope" validate:"oneof=org user"`
	UserID *string        `json:"user_id" bson:"user_id"`
}

func NewSetting() *Setting {
	return &Setting{Scope: "org"}
}

func (s *Setting) ApplyDefaults() {
	if s.Value == nil {
		s.Value = map[string]any{}
	}
}
