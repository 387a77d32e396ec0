package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/keydrill/internal/model"
)

const weakKeysShown = 8

// RenderRun prints a summary row per reported lesson followed by the
// weakest keys of the run.
func RenderRun(w io.Writer, lessons []model.LessonRecord, keys []model.KeyAggregate) error {
	if len(lessons) == 0 {
		_, err := fmt.Fprintln(w, "No lessons finished.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Run Summary"); err != nil {
		return err
	}
	tbl := newTable(numeric("#"), text("Lesson"), numeric("WPM"), numeric("Accuracy"),
		numeric("Typos"), numeric("Words"), numeric("Chars"), numeric("Seconds"))
	for _, l := range lessons {
		name := l.Name
		if l.Cancelled {
			name += " (stopped)"
		}
		tbl.add(
			strconv.Itoa(l.Position+1),
			name,
			fmt.Sprintf("%.1f", l.WPM),
			fmt.Sprintf("%.2f%%", l.Accuracy*100),
			strconv.Itoa(l.Typos),
			strconv.Itoa(l.Words),
			strconv.Itoa(l.Chars),
			fmt.Sprintf("%.1f", float64(l.DurationMs)/1000.0),
		)
	}
	if err := tbl.write(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return RenderWeakKeys(w, keys)
}

// RenderWeakKeys prints the lowest-accuracy keys.
func RenderWeakKeys(w io.Writer, keys []model.KeyAggregate) error {
	weak := SelectWeakKeys(keys, weakKeysShown)
	if len(weak) == 0 {
		_, err := fmt.Fprintln(w, "No typos recorded.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Weakest Keys"); err != nil {
		return err
	}
	tbl := newTable(text("Char"), numeric("Accuracy"), numeric("Avg Latency (ms)"), numeric("Matches"), numeric("Typos"))
	for _, agg := range weak {
		tbl.add(
			agg.Char,
			fmt.Sprintf("%.2f%%", accuracy(agg)*100),
			fmt.Sprintf("%.1f", avgLatency(agg)),
			strconv.Itoa(agg.Matches),
			strconv.Itoa(agg.Typos),
		)
	}
	return tbl.write(w)
}

// RenderTrend prints the WPM of each lesson as a sparkline no wider than
// width. Nothing is printed for fewer than two lessons.
func RenderTrend(w io.Writer, lessons []model.LessonRecord, width int) error {
	if len(lessons) < 2 {
		return nil
	}
	const label = "WPM trend "
	values := make([]float64, 0, len(lessons))
	for _, l := range lessons {
		values = append(values, l.WPM)
	}
	_, err := fmt.Fprintln(w, label+Sparkline(Fit(values, width-len(label))))
	return err
}
