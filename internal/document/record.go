package document

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is a stored document. Values are whatever the BSON codec produces
// for the source model: strings, int32/int64/float64, bool, nil,
// primitive.DateTime, bson.A and nested bson.M.
type Record = bson.M

const (
	FieldID        = "_id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// FromModel converts a validated model into a Record through the BSON codec
// and stamps the creation timestamps. Records are never updated, so both
// timestamps are equal.
func FromModel(m any, now time.Time) (Record, error) {
	raw, err := bson.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	rec := Record{}
	if err := bson.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	ts := primitive.NewDateTimeFromTime(now.UTC())
	rec[FieldCreatedAt] = ts
	rec[FieldUpdatedAt] = ts
	return rec, nil
}

// Present returns a copy of rec shaped for API responses: the store
// identifier is exposed as a string under "id".
func Present(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		if k == FieldID {
			out["id"] = IDString(v)
			continue
		}
		out[k] = v
	}
	return out
}

// IDString renders a store identifier as a string.
func IDString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}
