package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"time"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Epoch numbers above this magnitude are read as milliseconds, below as seconds.
const epochMillisThreshold = 2e10

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

var (
	minTimestamp = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxTimestamp = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)
)

// Timestamp is a client supplied point in time. It accepts RFC 3339, ISO 8601
// without a zone (read as UTC) and epoch seconds or milliseconds, and only
// within years 0 to 9999 in UTC so the value can always be encoded back.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var parsed time.Time
	switch {
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidTimestamp
		}
		p, err := parseTimestampString(s)
		if err != nil {
			return err
		}
		parsed = p
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return ErrInvalidTimestamp
		}
		p, err := parseEpoch(n)
		if err != nil {
			return err
		}
		parsed = p
	}

	parsed = parsed.UTC()
	if parsed.Before(minTimestamp) || parsed.After(maxTimestamp) {
		return ErrInvalidTimestamp
	}

	t.Time = parsed
	return nil
}

func parseTimestampString(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if p, err := time.Parse(layout, s); err == nil {
			return p, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

func parseEpoch(n float64) (time.Time, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return time.Time{}, ErrInvalidTimestamp
	}

	seconds := n
	if math.Abs(n) > epochMillisThreshold {
		seconds = n / 1000
	}

	if seconds < float64(minTimestamp.Unix()) || seconds > float64(maxTimestamp.Unix()) {
		return time.Time{}, ErrInvalidTimestamp
	}

	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC(), nil
}
