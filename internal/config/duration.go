package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// Duration is a time.Duration that is stored in JSON as a human-readable string.
//
// Accepted inputs include everything time.ParseDuration understands plus day
// and week units ("1d", "2w"). Bare numbers are read as nanoseconds.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String formats the duration the way it is written to disk.
func (d Duration) String() string {
	return str2duration.String(time.Duration(d))
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*d = Duration(time.Duration(v))
		return nil
	case string:
		parsed, err := ParseDuration(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration %s", data)
	}
}

// ParseDuration parses a human-readable duration string.
func ParseDuration(s string) (Duration, error) {
	parsed, err := str2duration.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return Duration(parsed), nil
}
