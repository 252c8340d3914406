package date

// Range represents a half-open range of dates: From is included, To is not.
// A zero From or To leaves that side unbounded.
type Range struct{ From, To Date }

// Contains reports whether the date falls inside the range.
func (r Range) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !d.Before(r.To) {
		return false
	}
	return true
}

// IsZero reports whether the range is unbounded on both sides.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }
