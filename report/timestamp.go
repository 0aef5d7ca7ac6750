package report

import (
	"encoding/json"
	"time"
)

// naiveLayout parses ISO-8601 timestamps which carry no zone offset.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a time.Time which additionally accepts zone-less ISO-8601
// values, interpreted as UTC.
type Timestamp struct {
	time.Time
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Time)
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t, err = time.Parse(naiveLayout, s); err != nil {
			return err
		}
	}
	ts.Time = t
	return nil
}
