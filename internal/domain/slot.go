package domain

import "fmt"

// PartOfDay enumerates the named subdivisions of a calendar day.
type PartOfDay string

const (
	PartOfDayMorning   PartOfDay = "morning"
	PartOfDayAfternoon PartOfDay = "afternoon"
	PartOfDayEvening   PartOfDay = "evening"
	PartOfDayNight     PartOfDay = "night"
)

// partOfDayRank orders parts of day chronologically rather than lexically.
var partOfDayRank = map[PartOfDay]int{
	PartOfDayMorning:   0,
	PartOfDayAfternoon: 1,
	PartOfDayEvening:   2,
	PartOfDayNight:     3,
}

// ParsePartOfDay validates a raw part-of-day value.
func ParsePartOfDay(raw string) (PartOfDay, error) {
	pod := PartOfDay(raw)
	if _, ok := partOfDayRank[pod]; !ok {
		return "", fmt.Errorf("unknown part_of_day %q", raw)
	}
	return pod, nil
}

// Rank returns the chronological position of the part of day.
func (p PartOfDay) Rank() int {
	return partOfDayRank[p]
}

// Window identifies one schedulable time window: a date plus a part of day.
// Dates are ISO YYYY-MM-DD strings, so lexicographic order is chronological.
type Window struct {
	Date      string
	PartOfDay PartOfDay
}

// SlotKey is the composite identity of a slot. It has value semantics and a
// total order, so rosters can be produced in a deterministic sequence.
type SlotKey struct {
	Date      string
	PartOfDay PartOfDay
	Service   string
}

// Window returns the time-window component of the key.
func (k SlotKey) Window() Window {
	return Window{Date: k.Date, PartOfDay: k.PartOfDay}
}

// Less orders keys by date, then part of day, then service.
func (k SlotKey) Less(other SlotKey) bool {
	if k.Date != other.Date {
		return k.Date < other.Date
	}
	if k.PartOfDay != other.PartOfDay {
		return k.PartOfDay.Rank() < other.PartOfDay.Rank()
	}
	return k.Service < other.Service
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Date, k.PartOfDay, k.Service)
}

// Slot is a unit of required staffing. Slots are immutable once loaded.
type Slot struct {
	Key      SlotKey
	Required int
	Team     string
}
