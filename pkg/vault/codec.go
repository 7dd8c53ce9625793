package vault

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Duration is a lease or TTL duration. Vault serializes durations as a
// non-negative integer count of wall-clock seconds.
type Duration time.Duration

// Seconds returns the duration as whole seconds, the wire representation.
func (d Duration) Seconds() int64 {
	return int64(time.Duration(d) / time.Second)
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalJSON encodes the duration as integer seconds.
func (d Duration) MarshalJSON() ([]byte, error) {
	if d < 0 {
		return nil, &DecodeError{Snippet: fmt.Sprintf("%d", d.Seconds()), Err: fmt.Errorf("negative duration")}
	}
	return []byte(strconv.FormatInt(d.Seconds(), 10)), nil
}

// UnmarshalJSON decodes an integer second count. Negative values,
// fractional values, and non-numeric tokens are rejected.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	secs, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return &DecodeError{Snippet: snippet(data), Err: fmt.Errorf("lease duration is not a whole number of seconds: %w", err)}
	}
	if secs < 0 {
		return &DecodeError{Snippet: snippet(data), Err: fmt.Errorf("lease duration is negative")}
	}
	if secs > math.MaxInt64/int64(time.Second) {
		return &DecodeError{Snippet: snippet(data), Err: fmt.Errorf("lease duration overflows")}
	}
	*d = Duration(time.Duration(secs) * time.Second)
	return nil
}

// maxEpochSeconds bounds epoch timestamps to what time.Time can represent
// without overflowing the year. Matches years 1..9999.
const (
	minEpochSeconds = -62135596800  // 0001-01-01T00:00:00Z
	maxEpochSeconds = 253402300799  // 9999-12-31T23:59:59Z
)

// EpochTime is a timestamp serialized as integer seconds since the Unix
// epoch. Endpoints that use this encoding declare it at the field level;
// the encoding is never guessed from content.
type EpochTime struct {
	time.Time
}

// MarshalJSON encodes the timestamp as epoch seconds.
func (t EpochTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.Unix(), 10)), nil
}

// UnmarshalJSON decodes integer epoch seconds, failing on values outside
// the representable calendar range.
func (t *EpochTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	secs, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return &TimestampError{Value: snippet(data), Err: err}
	}
	if secs < minEpochSeconds || secs > maxEpochSeconds {
		return &TimestampError{Value: snippet(data), Err: fmt.Errorf("epoch seconds out of calendar range")}
	}
	t.Time = time.Unix(secs, 0).UTC()
	return nil
}

// RFC3339Time is a timestamp serialized as an RFC-3339 string with an
// explicit offset, e.g. "2016-06-07T15:52:10.4462-04:00". The offset is
// preserved as parsed, not normalized to UTC.
type RFC3339Time struct {
	time.Time
}

// MarshalJSON encodes the timestamp as an RFC-3339 string.
func (t RFC3339Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// UnmarshalJSON decodes an RFC-3339 string. Parse failures carry the
// offending value; there is no silent default.
func (t *RFC3339Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &TimestampError{Value: snippet(data), Err: err}
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return &TimestampError{Value: raw, Err: err}
	}
	t.Time = parsed
	return nil
}
