package timestamp

import "time"

// Timestamp is a structured point in time split in seconds and nanoseconds.
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int32 `json:"nanoseconds"`
}

// FromMillis converts epoch milliseconds, truncating to whole seconds.
func FromMillis(ms int64) Timestamp {
	return Timestamp{Seconds: ms / 1000}
}

// FromTime truncates a time to whole seconds.
func FromTime(t time.Time) Timestamp {
	return Timestamp{Seconds: t.Unix()}
}

// Millis returns the value in epoch milliseconds.
func (t Timestamp) Millis() int64 {
	return t.Seconds*1000 + int64(t.Nanoseconds)/int64(time.Millisecond)
}

// Time returns the value as a UTC time.
func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, int64(t.Nanoseconds)).UTC()
}

// IsZero reports whether the timestamp is unset.
func (t Timestamp) IsZero() bool {
	return t.Seconds == 0 && t.Nanoseconds == 0
}
