package models

// LegalDocument is a reference text: statute, case law, contract, brief...
type LegalDocument struct {
	Title        *string      `json:"title" bson:"title" validate:"required"`
	Content      *string      `json:"content" bson:"content" validate:"required"`
	Jurisdiction *string      `json:"jurisdiction" bson:"jurisdiction"`
	PracticeArea *string      `json:"practice_area" bson:"practice_area"`
	DocType      *string      `json:"doc_type" bson:"doc_type"`
	Year         *WholeNumber `json:"year" bson:"year"`
	Source       *string      `json:"source" bson:"source"`
	Tags         []string     `json:"tags" bson:"tags"`
}

func NewLegalDocument() *LegalDocument {
	return &LegalDocument{}
}

func (d *LegalDocument) ApplyDefaults() {
	d.Tags = emptyIfNil(d.Tags)
}
