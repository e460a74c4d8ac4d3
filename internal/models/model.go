package models

// Model is implemented by every entity payload type. Required fields are
// pointers so that presence, not emptiness, is checked: "" is a valid name.
// Constructors pre-fill enum defaults; ApplyDefaults runs after decoding and replaces absent
// collections with empty ones so they are stored as [] / {} rather than null.
type Model interface {
	ApplyDefaults()
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyMapsIfNil(s []map[string]any) []map[string]any {
	if s == nil {
		return []map[string]any{}
	}
	return s
}
