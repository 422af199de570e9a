package domain

import "time"

// TimeRange is the half-open interval [Start, End).
// swagger:model TimeRange
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeRange returns a TimeRange, or ErrInvalidTimeRange unless start is strictly before end.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	tr := TimeRange{Start: start, End: end}
	if err := tr.Validate(); err != nil {
		return TimeRange{}, err
	}
	return tr, nil
}

// Validate returns ErrInvalidTimeRange when Start is not before End.
func (t TimeRange) Validate() error {
	if !t.Start.Before(t.End) {
		return ErrInvalidTimeRange
	}
	return nil
}

// Overlaps reports whether the two ranges share any instant. Ranges that only touch do not overlap.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.Start.Before(other.End) && other.Start.Before(t.End)
}

// Equal compares both bounds as instants, ignoring location.
func (t TimeRange) Equal(other TimeRange) bool {
	return t.Start.Equal(other.Start) && t.End.Equal(other.End)
}

// Duration is End minus Start.
func (t TimeRange) Duration() time.Duration {
	return t.End.Sub(t.Start)
}
