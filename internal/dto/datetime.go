package dto

import (
	"fmt"
	"strconv"
	"time"
)

// DateTimeLayout is the textual format of every date field crossing the API
// boundary, both in requests and responses.
const DateTimeLayout = "2006-01-02 15:04"

// DateTime is a time.Time that marshals as "YYYY-MM-DD HH:MM"
type DateTime time.Time

// NewDateTime wraps a time.Time
func NewDateTime(t time.Time) DateTime {
	return DateTime(t)
}

// Time returns the underlying time.Time
func (d DateTime) Time() time.Time {
	return time.Time(d)
}

// MarshalJSON implements json.Marshaler
func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(d).Format(DateTimeLayout))), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *DateTime) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("date must be a string in %q format", DateTimeLayout)
	}

	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected %q format", s, DateTimeLayout)
	}

	*d = DateTime(t)
	return nil
}
