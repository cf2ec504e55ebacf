package restapi

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// The platform serializes dates as "2006-01-02" and datetimes either
// with or without an offset depending on how the value was stored.
const (
	dateLayout      = "2006-01-02"
	naiveTimeLayout = "2006-01-02T15:04:05"
)

var jsonNull = []byte("null")

// wireDate is a nullable calendar date on the wire.
type wireDate struct {
	Time  time.Time
	Valid bool
}

func newWireDate(t null.Time) wireDate {
	return wireDate{Time: t.Time, Valid: t.Valid}
}

func (d wireDate) toNullTime() null.Time {
	return null.Time{Time: d.Time, Valid: d.Valid}
}

func (d wireDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return jsonNull, nil
	}
	return json.Marshal(d.Time.Format(dateLayout))
}

func (d *wireDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*d = wireDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "unmarshalling date")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return errors.Wrap(err, "parsing date")
	}
	*d = wireDate{Time: t, Valid: true}
	return nil
}

// wireTime is a nullable datetime on the wire, tolerant of missing
// offsets.
type wireTime struct {
	Time  time.Time
	Valid bool
}

func newWireTime(t null.Time) wireTime {
	return wireTime{Time: t.Time, Valid: t.Valid}
}

func (wt wireTime) toNullTime() null.Time {
	return null.Time{Time: wt.Time, Valid: wt.Valid}
}

func (wt wireTime) MarshalJSON() ([]byte, error) {
	if !wt.Valid {
		return jsonNull, nil
	}
	return json.Marshal(wt.Time.Format(time.RFC3339))
}

func (wt *wireTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*wt = wireTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "unmarshalling datetime")
	}
	for _, layout := range []string{time.RFC3339, naiveTimeLayout, dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			*wt = wireTime{Time: t, Valid: true}
			return nil
		}
	}
	return errors.Errorf("parsing datetime %q", s)
}
