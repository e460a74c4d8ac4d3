package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// DateTime is a timestamp that accepts RFC 3339, ISO 8601 without an offset
// (read as UTC), a bare date, or Unix seconds. It is stored as a BSON date.
type DateTime struct{ time.Time }

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

var errDateTime = errors.New("invalid datetime: expected RFC 3339, YYYY-MM-DD[THH:MM[:SS]] or Unix seconds")

func (d *DateTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] != '"' {
		sec, err := strconv.ParseFloat(string(b), 64)
		if err != nil || math.IsInf(sec, 0) || math.IsNaN(sec) {
			return errDateTime
		}
		whole, frac := math.Modf(sec)
		d.Time = time.Unix(int64(whole), int64(frac*1e9)).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errDateTime
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return errDateTime
}

func (d DateTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.Time.UTC())
}

// WholeNumber is an integer that also accepts integral floats (2020.0) and
// numeric strings ("2020").
type WholeNumber int

func (n *WholeNumber) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if len(s) > 0 && s[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	if i, err := strconv.ParseInt(s, 10, 0); err == nil {
		*n = WholeNumber(i)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("expected a whole number, got %s", b)
	}
	*n = WholeNumber(f)
	return nil
}
