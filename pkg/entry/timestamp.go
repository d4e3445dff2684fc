package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

// DisplayLayout renders creation times the way entries show them to the writer.
const DisplayLayout = "1/2/2006, 3:04:05 PM"

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp is a time that serializes as an RFC3339 string, or "" when zero.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

// Display formats the timestamp in local time for people.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DisplayLayout)
}
