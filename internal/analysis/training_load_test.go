package analysis

import (
	"math"
	"strings"
	"testing"

	"runboard/internal/store"
)

func TestTrainingLoadHistoryEmpty(t *testing.T) {
	anchor := mustDate("2024-06-30")
	if got := TrainingLoadHistory(nil, anchor, anchor); got != nil {
		t.Errorf("TrainingLoadHistory(nil) = %v, want nil", got)
	}
	if got := TrainingLoadHistory(map[string]float64{}, anchor, anchor); got != nil {
		t.Errorf("TrainingLoadHistory(empty) = %v, want nil", got)
	}
}

func TestTrainingLoadHistoryConvergence(t *testing.T) {
	// Constant daily load converges both CTL and ATL to the load itself,
	// and TSB to zero
	base := mustDate("2023-01-01")
	const load = 100.0
	const days = 500

	loads := make(map[string]float64, days)
	for i := 0; i < days; i++ {
		loads[dayKey(base, i)] = load
	}

	end := base.AddDate(0, 0, days-1)
	history := TrainingLoadHistory(loads, base, end)

	if len(history) != days {
		t.Fatalf("len(history) = %d, want %d", len(history), days)
	}

	last := history[len(history)-1]
	if math.Abs(last.CTL-load) > 0.1 {
		t.Errorf("CTL after %d days = %v, want %v (±0.1)", days, last.CTL, load)
	}
	if math.Abs(last.ATL-load) > 0.1 {
		t.Errorf("ATL after %d days = %v, want %v (±0.1)", days, last.ATL, load)
	}
	if math.Abs(last.TSB) > 0.1 {
		t.Errorf("TSB after %d days = %v, want 0 (±0.1)", days, last.TSB)
	}
}

func TestTrainingLoadHistorySeeding(t *testing.T) {
	// A window query must replay decay from the earliest load, so a
	// truncated window matches the tail of the full computation
	base := mustDate("2024-01-01")
	loads := make(map[string]float64)
	for i := 0; i < 100; i++ {
		// Irregular loading pattern
		if i%3 == 0 {
			loads[dayKey(base, i)] = 80
		} else if i%7 == 0 {
			loads[dayKey(base, i)] = 120
		}
	}

	end := base.AddDate(0, 0, 99)
	full := TrainingLoadHistory(loads, base, end)
	windowed := TrainingLoadHistory(loads, end.AddDate(0, 0, -9), end)

	if len(windowed) != 10 {
		t.Fatalf("len(windowed) = %d, want 10", len(windowed))
	}

	tail := full[len(full)-10:]
	for i := range windowed {
		if windowed[i] != tail[i] {
			t.Errorf("day %s: windowed = %+v, full tail = %+v", windowed[i].Date, windowed[i], tail[i])
		}
	}
}

func TestTrainingLoadHistoryRestDaysDecay(t *testing.T) {
	loads := map[string]float64{"2024-06-01": 200}

	start := mustDate("2024-06-01")
	end := mustDate("2024-06-20")
	history := TrainingLoadHistory(loads, start, end)

	if len(history) != 20 {
		t.Fatalf("len(history) = %d, want 20", len(history))
	}

	// Load registers on day one, then decays toward zero
	if history[0].TRIMP != 200 {
		t.Errorf("day 1 TRIMP = %v, want 200", history[0].TRIMP)
	}
	for i := 1; i < len(history); i++ {
		if history[i].TRIMP != 0 {
			t.Errorf("rest day %s TRIMP = %v, want 0", history[i].Date, history[i].TRIMP)
		}
		if history[i].ATL >= history[i-1].ATL {
			t.Errorf("ATL not decaying on %s: %v >= %v", history[i].Date, history[i].ATL, history[i-1].ATL)
		}
	}

	// ATL decays much faster than CTL, so freshness eventually goes positive
	last := history[len(history)-1]
	if last.ATL >= last.CTL {
		t.Errorf("after 19 rest days ATL (%v) should be below CTL (%v)", last.ATL, last.CTL)
	}
	if last.TSB <= 0 {
		t.Errorf("after rest TSB = %v, want positive (fresh)", last.TSB)
	}
}

func TestTrainingLoadHistoryWindowBounds(t *testing.T) {
	loads := map[string]float64{
		"2024-06-01": 100,
		"2024-06-05": 100,
	}

	history := TrainingLoadHistory(loads, mustDate("2024-06-03"), mustDate("2024-06-05"))

	want := []string{"2024-06-03", "2024-06-04", "2024-06-05"}
	if len(history) != len(want) {
		t.Fatalf("len(history) = %d, want %d", len(history), len(want))
	}
	for i, m := range history {
		if m.Date != want[i] {
			t.Errorf("history[%d].Date = %s, want %s", i, m.Date, want[i])
		}
	}

	// The June 1 load decayed into the window even though its day is
	// outside the returned range
	if history[0].CTL <= 0 {
		t.Errorf("window start CTL = %v, want seeded from pre-window load", history[0].CTL)
	}
}

func TestCurrentFitness(t *testing.T) {
	zones := DefaultZones()
	anchor := mustDate("2024-06-30")

	if _, ok := CurrentFitness(nil, zones, anchor); ok {
		t.Error("CurrentFitness(no activities) ok = true, want false")
	}

	var acts []store.Activity
	for _, date := range []string{"2024-06-20", "2024-06-22", "2024-06-25", "2024-06-28"} {
		acts = append(acts, makeRun(date, 10000, 3000, floatPtr(150)))
	}

	fitness, ok := CurrentFitness(acts, zones, anchor)
	if !ok {
		t.Fatal("CurrentFitness ok = false, want true")
	}
	if fitness.Date != "2024-06-30" {
		t.Errorf("fitness.Date = %s, want anchor date", fitness.Date)
	}
	if fitness.CTL <= 0 || fitness.ATL <= 0 {
		t.Errorf("fitness = %+v, want positive CTL/ATL", fitness)
	}
	// Recent loading means more fatigue than fitness
	if fitness.TSB >= 0 {
		t.Errorf("TSB = %v, want negative after a fresh training block", fitness.TSB)
	}
}

func TestFormDescription(t *testing.T) {
	tests := []struct {
		tsb      float64
		contains string
	}{
		{30, "detrained"},
		{15, "ready to race"},
		{5, "Neutral"},
		{-5, "Slightly fatigued"},
		{-20, "building fitness"},
		{-30, "rest needed"},
	}

	for _, tt := range tests {
		got := FormDescription(tt.tsb)
		if !strings.Contains(got, tt.contains) {
			t.Errorf("FormDescription(%v) = %q, want mention of %q", tt.tsb, got, tt.contains)
		}
	}
}
