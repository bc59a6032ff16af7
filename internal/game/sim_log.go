package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a simulation.
type SimLogEntry struct {
	Tick     int
	Actor    string  // "P", "E3", "B12", or "--" for level-wide events
	Category string  // move, coin, bomb, enemy, player, level, session
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] B7   bomb     bomb_exploded    at (3,5)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-4s %-8s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. Unlike EventLog (a UI ring buffer),
// SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position entries
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, category, key, value, numVal)
}

// Verbose reports whether per-tick entries are recorded.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len returns the number of entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
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

// FilterActor returns entries for one actor label.
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// FirstOf returns the earliest entry matching category+key, or false if none.
func (sl *SimLog) FirstOf(category, key string) (SimLogEntry, bool) {
	for _, e := range sl.entries {
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
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

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(sl.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of a simulation.
func (sl *SimLog) Summary(s *Sim) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d ---\n", s.Tick())
	oc := DetermineLevelOutcome(s)
	fmt.Fprintf(&sb, "Outcome: %s (%s)\n", oc.Outcome, oc.Description)
	sc := s.Score()
	fmt.Fprintf(&sb, "Score: coins=%d moves=%d\n", sc.Coins, sc.Moves)
	fmt.Fprintf(&sb, "Bombs: placed=%d exploded=%d  Enemies killed=%d left=%d\n",
		sl.CountCategory("bomb", EventBombPlaced.String()),
		sl.CountCategory("bomb", EventBombExploded.String()),
		sl.CountCategory("enemy", EventEnemyKilled.String()),
		s.Board().EnemyCount())

	b := s.Board()
	exit := "hidden"
	if b.ExitRevealed() {
		exit = "open at " + b.ExitPosition().String()
	}
	fmt.Fprintf(&sb, "Player: %s  Exit: %s\n", s.Player().Pos, exit)

	enemies := s.Enemies()
	if len(enemies) == 0 {
		sb.WriteString("Enemies: none\n")
		return sb.String()
	}
	labels := make([]string, len(enemies))
	for i, e := range enemies {
		labels[i] = fmt.Sprintf("%s@%s", enemyLabel(e.ID), e.Pos)
	}
	fmt.Fprintf(&sb, "Enemies: %s\n", strings.Join(labels, ", "))
	return sb.String()
}
