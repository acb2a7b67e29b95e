package game

import (
	"fmt"
	"strings"
)

// EventEntry is one recorded simulation event.
type EventEntry struct {
	Tick     int
	Actor    string  // label e.g. "P", "E3", or "--" for world events
	Category string  // combat, ammo, effect, world
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] E3   combat    hit              Rifle 45.0 (shield broke)
func (e EventEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// EventLog collects structured events from a World. It is unbounded and
// machine-readable; the view keeps its own short ring buffer for display.
type EventLog struct {
	entries []EventEntry
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, per-tick entries
// (status damage ticks, projectile expiry) are recorded as well.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (el *EventLog) Add(tick int, actor, category, key, value string, numVal float64) {
	if el == nil {
		return
	}
	el.entries = append(el.entries, EventEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if el == nil || !el.verbose {
		return
	}
	el.Add(tick, actor, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventEntry {
	return el.entries
}

// Len is the number of recorded entries.
func (el *EventLog) Len() int { return len(el.entries) }

// Since returns entries recorded at index n and later, for incremental
// consumers that remember how far they have read.
func (el *EventLog) Since(n int) []EventEntry {
	if n < 0 {
		n = 0
	}
	if n >= len(el.entries) {
		return nil
	}
	return el.entries[n:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventEntry {
	var out []EventEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for a specific actor label.
func (el *EventLog) FilterActor(label string) []EventEntry {
	var out []EventEntry
	for _, e := range el.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// SumCategory adds up NumVal over entries matching category and key.
func (el *EventLog) SumCategory(category, key string) float64 {
	total := 0.0
	for _, e := range el.Filter(category, key) {
		total += e.NumVal
	}
	return total
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
