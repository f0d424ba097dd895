package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// TimestampLayout is fixed width so that lexical order equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// accepted on read, newest writers first
var timestampReadLayouts = []string{
	TimestampLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Timestamp is a UTC instant stored as an ISO-8601 string.
type Timestamp struct {
	time.Time
}

// Now returns the current time truncated to microseconds
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Microsecond)}
}

// String formats the timestamp with TimestampLayout
func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts ISO-8601 strings with or without a zone; zoneless values are UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampReadLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(t.String())
}

func (t *Timestamp) UnmarshalBSONValue(typ bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: typ, Value: data}
	switch typ {
	case bson.TypeString:
		parsed, err := ParseTimestamp(raw.StringValue())
		if err != nil {
			return err
		}
		*t = parsed
	case bson.TypeDateTime:
		*t = NewTimestamp(raw.Time())
	case bson.TypeTimestamp:
		sec, _ := raw.Timestamp()
		*t = NewTimestamp(time.Unix(int64(sec), 0))
	case bson.TypeNull, bson.TypeUndefined:
		*t = Timestamp{}
	default:
		return fmt.Errorf("cannot decode %v into a timestamp", typ)
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
