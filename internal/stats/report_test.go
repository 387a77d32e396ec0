package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/keydrill/internal/model"
)

func TestSelectWeakKeys(t *testing.T) {
	aggs := []model.KeyAggregate{
		{Char: "a", Matches: 9, Typos: 1},
		{Char: "b", Matches: 1, Typos: 1},
		{Char: "c", Matches: 5, Typos: 0},
		{Char: "d", Matches: 1, Typos: 1},
	}
	weak := SelectWeakKeys(aggs, 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak keys, got %d", len(weak))
	}
	if weak[0].Char != "b" || weak[1].Char != "d" {
		t.Fatalf("unexpected order: %+v", weak)
	}
	if all := SelectWeakKeys(aggs, 0); len(all) != 3 {
		t.Fatalf("expected keys with typos only, got %+v", all)
	}
}

func TestRenderRun(t *testing.T) {
	var buf bytes.Buffer
	lessons := []model.LessonRecord{
		{Position: 0, Name: "home row", WPM: 42.5, Accuracy: 0.95, Typos: 3, Words: 10, Chars: 50, DurationMs: 14100},
		{Position: 1, Name: "full", Cancelled: true},
	}
	keys := []model.KeyAggregate{{Char: "e", Matches: 3, Typos: 1, LatencySumMs: 300, LatencyCount: 3}}
	if err := RenderRun(&buf, lessons, keys); err != nil {
		t.Fatalf("render run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Run Summary", "home row", "42.5", "95.00%", "14.1", "full (stopped)", "Weakest Keys", "75.00%", "100.0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRunEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderRun(&buf, nil, nil); err != nil {
		t.Fatalf("render run: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No lessons finished." {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderTrend(t *testing.T) {
	var buf bytes.Buffer
	lessons := []model.LessonRecord{{WPM: 10}, {WPM: 20}}
	if err := RenderTrend(&buf, lessons, 80); err != nil {
		t.Fatalf("render trend: %v", err)
	}
	if got := buf.String(); got != "WPM trend  @\n" {
		t.Fatalf("unexpected trend %q", got)
	}

	buf.Reset()
	if err := RenderTrend(&buf, lessons[:1], 80); err != nil {
		t.Fatalf("render trend: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for one lesson")
	}
}
