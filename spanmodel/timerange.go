package spanmodel

import "time"

// TimeRangeGranularity is the ε used by RightOpenTimeRange: the smallest
// representable tick by which the upper bound exceeds the maximum observed
// start time. spec.md §9 Open Question 2 leaves this unspecified and fixes
// it to one minute; this is that fixed value, exposed so a caller
// assembling a Project can override it via spanstore.WithTimeRangeGranularity
// if a deployment needs finer sweep granularity.
const TimeRangeGranularity = time.Minute

// RightOpenTimeRange returns a half-open interval [minStart, maxStart+ε)
// that strictly contains maxStart as an interior point, per spec.md §4.1.
// granularity is the ε to use; callers pass spanmodel.TimeRangeGranularity
// for the default.
func RightOpenTimeRange(minStart, maxStart time.Time, granularity time.Duration) (time.Time, time.Time) {
	return minStart, maxStart.Add(granularity)
}
