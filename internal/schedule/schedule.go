package schedule

import "fmt"

// Table maps hour of day to the positional index of the event record that
// should be tooted at that hour.
type Table map[int]int

// Validate fails fast when a scheduled index cannot exist in a parsed
// sequence of entryCount records.
func (t Table) Validate(entryCount int) error {
	for hour, idx := range t {
		if idx >= entryCount {
			return fmt.Errorf("schedule index %d for hour %d exceeds %d parsed entries", idx, hour, entryCount)
		}
	}
	return nil
}

// Select returns the record index for the given hour. An explicit override
// always wins over the table. A false second return means there is nothing
// to toot about this hour.
func (t Table) Select(override *int, hour int) (int, bool) {
	if override != nil {
		return *override, true
	}
	idx, ok := t[hour]
	return idx, ok
}
