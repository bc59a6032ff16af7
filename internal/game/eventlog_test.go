package game

import (
	"testing"

	"github.com/Garsondee/Bomb-Maze/internal/board"
)

func TestEventLog_RecentChronological(t *testing.T) {
	el := NewEventLog()
	el.Add(0, Event{Tick: 1, Kind: EventBombPlaced, Pos: board.P(1, 1)})
	el.Add(0, Event{Tick: 2, Kind: EventCoinCollected})
	got := el.Recent()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Tick != 1 || got[1].Tick != 2 {
		t.Fatalf("expected oldest first, got %+v", got)
	}
	if got[0].Message != "bomb placed at (1,1)" {
		t.Fatalf("unexpected message %q", got[0].Message)
	}
}

func TestEventLog_WrapsAtCapacity(t *testing.T) {
	el := NewEventLog()
	for i := 0; i < logMaxEntries+5; i++ {
		el.Add(1, Event{Tick: i, Kind: EventMoveStarted, Dir: board.Left})
	}
	got := el.Recent()
	if len(got) != logMaxEntries {
		t.Fatalf("expected %d entries, got %d", logMaxEntries, len(got))
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != logMaxEntries+4 {
		t.Fatalf("expected ticks 5..%d, got %d..%d", logMaxEntries+4, got[0].Tick, got[len(got)-1].Tick)
	}
	el.Clear()
	if len(el.Recent()) != 0 {
		t.Fatal("Clear should empty the log")
	}
}

func TestEventKind_NamesAndCategories(t *testing.T) {
	for k := EventKind(0); k < eventKindCount; k++ {
		if k.String() == "unknown" || k.category() == "misc" {
			t.Fatalf("event kind %d has no name or category", k)
		}
		if (Event{Kind: k}).Message() == "" {
			t.Fatalf("event kind %s has no message", k)
		}
	}
}
