package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 260
	logMaxEntries = 40
	logLineHeight = 14
)

// EventLogEntry is a single line in the event log.
type EventLogEntry struct {
	Tick    int
	Level   int
	Kind    EventKind
	Message string
}

// EventLog is a ring buffer of recent events rendered beside the board.
type EventLog struct {
	entries []EventLogEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventLogEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(level int, ev Event) {
	el.entries[el.head] = EventLogEntry{
		Tick:    ev.Tick,
		Level:   level,
		Kind:    ev.Kind,
		Message: ev.Message(),
	}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Clear drops every entry.
func (el *EventLog) Clear() {
	el.head, el.count = 0, 0
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventLogEntry {
	result := make([]EventLogEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// Draw renders the log panel at panelX, newest entry at the bottom.
func (el *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 14, G: 12, B: 18, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 70, G: 60, B: 90, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 18, color.RGBA{R: 30, G: 24, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 2)

	entries := el.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 22
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 40, G: 32, B: 52, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, eventColour(e.Kind), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("L%d %5d %s", e.Level+1, e.Tick, e.Message), panelX+12, y)
		y += logLineHeight
	}
}

// eventColour is the marker colour for an event kind.
func eventColour(k EventKind) color.RGBA {
	switch k {
	case EventCoinCollected:
		return color.RGBA{R: 240, G: 200, B: 40, A: 255}
	case EventBombPlaced, EventBombExploded:
		return color.RGBA{R: 240, G: 120, B: 40, A: 255}
	case EventEnemyKilled:
		return color.RGBA{R: 200, G: 60, B: 200, A: 255}
	case EventPlayerDied:
		return color.RGBA{R: 230, G: 50, B: 50, A: 255}
	case EventExitRevealed, EventLevelComplete:
		return color.RGBA{R: 60, G: 210, B: 110, A: 255}
	default:
		return color.RGBA{R: 120, G: 120, B: 140, A: 255}
	}
}
