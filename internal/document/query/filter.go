package query

import (
	"fmt"
	"math"
	"regexp"

	"github.com/lexdesk/lexdesk/backend/go-services/internal/document"
	"go.mongodb.org/mongo-driver/bson"
)

// Condition is an exact-match constraint on one field.
type Condition struct {
	Field string
	Value any
}

// Filter selects records: every condition must hold, and when a search term
// is set at least one search field must contain it (case-insensitive).
// The zero Filter matches everything.
type Filter struct {
	Term         string
	SearchFields []string
	Conditions   []Condition

	pattern *regexp.Regexp
}

// Build assembles a filter from an optional free-text term and equality
// constraints. The term is matched literally, not as a pattern. Callers
// reject terms that are not valid UTF-8; such a term matches nothing.
func Build(term string, searchFields []string, conditions []Condition) Filter {
	f := Filter{Conditions: conditions}
	if term != "" && len(searchFields) > 0 {
		f.Term = term
		f.SearchFields = searchFields
		f.pattern, _ = literal(term)
	}
	return f
}

func literal(term string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + regexp.QuoteMeta(term))
}

// IsEmpty reports whether the filter is unconstrained.
func (f Filter) IsEmpty() bool {
	return f.Term == "" && len(f.Conditions) == 0
}

// BSON renders the filter as a MongoDB query document.
func (f Filter) BSON() bson.D {
	out := bson.D{}
	for _, c := range f.Conditions {
		out = append(out, bson.E{Key: c.Field, Value: c.Value})
	}
	if f.Term != "" {
		quoted := regexp.QuoteMeta(f.Term)
		or := bson.A{}
		for _, field := range f.SearchFields {
			or = append(or, bson.D{{Key: field, Value: bson.D{
				{Key: "$regex", Value: quoted},
				{Key: "$options", Value: "i"},
			}}})
		}
		out = append(out, bson.E{Key: "$or", Value: or})
	}
	return out
}

// Matches evaluates the filter against a record in process, with the same
// semantics as the rendered BSON query.
func (f Filter) Matches(rec document.Record) bool {
	for _, c := range f.Conditions {
		v, ok := rec[c.Field]
		if !ok || !equal(v, c.Value) {
			return false
		}
	}
	if f.Term == "" {
		return true
	}
	pattern := f.pattern
	if pattern == nil {
		var err error
		if pattern, err = literal(f.Term); err != nil {
			return false
		}
	}
	for _, field := range f.SearchFields {
		if s, ok := rec[field].(string); ok && pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// equal compares stored and requested values. Numbers compare by value so an
// int query parameter matches an int32 or double stored by the BSON codec.
func equal(stored, want any) bool {
	sf, sNum := number(stored)
	wf, wNum := number(want)
	if sNum || wNum {
		return sNum && wNum && sf == wf
	}
	switch s := stored.(type) {
	case string, bool, nil:
		return s == want
	}
	return fmt.Sprint(stored) == fmt.Sprint(want)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		if math.IsNaN(n) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
