package analysis

import (
	"math"
	"testing"
	"time"

	"runboard/internal/store"
)

func TestRiegel(t *testing.T) {
	tests := []struct {
		name     string
		t1       float64
		d1       float64
		d2       float64
		expected float64
		delta    float64
	}{
		{
			name: "20 minute 5K to 10K",
			t1:   1200, d1: 5000, d2: 10000,
			expected: 1200 * math.Pow(2, 1.06), // ~2502s, a bit over double
			delta:    0.01,
		},
		{
			name: "same distance is identity",
			t1:   1200, d1: 5000, d2: 5000,
			expected: 1200,
			delta:    1e-9,
		},
		{
			name: "shorter target is proportionally faster",
			t1:   2502, d1: 10000, d2: 5000,
			expected: 2502 / math.Pow(2, 1.06),
			delta:    0.01,
		},
		{name: "zero time", t1: 0, d1: 5000, d2: 10000, expected: 0},
		{name: "zero source distance", t1: 1200, d1: 0, d2: 10000, expected: 0},
		{name: "zero target distance", t1: 1200, d1: 5000, d2: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Riegel(tt.t1, tt.d1, tt.d2)
			if math.Abs(got-tt.expected) > tt.delta {
				t.Errorf("Riegel(%v, %v, %v) = %v, want %v", tt.t1, tt.d1, tt.d2, got, tt.expected)
			}
		})
	}

	// Sanity on magnitude: doubling distance costs just over double the time
	got := Riegel(1200, 5000, 10000)
	if got < 2400 || got > 2520 {
		t.Errorf("Riegel(1200, 5000, 10000) = %v, want just over 2400", got)
	}
}

func TestPeriodWindows(t *testing.T) {
	now := mustDate("2024-06-15")

	t.Run("current month clamps to today", func(t *testing.T) {
		cs, ce, ps, pe := periodWindows(Period{Mode: PeriodMonth, Year: 2024, Month: time.June}, now)
		if cs != mustDate("2024-06-01") || ce != mustDate("2024-06-15") {
			t.Errorf("current window = %v..%v, want Jun 1..Jun 15", cs, ce)
		}
		if ps != mustDate("2024-05-01") || pe != mustDate("2024-05-31") {
			t.Errorf("previous window = %v..%v, want May 1..May 31", ps, pe)
		}
	})

	t.Run("past month keeps its full range", func(t *testing.T) {
		cs, ce, ps, pe := periodWindows(Period{Mode: PeriodMonth, Year: 2024, Month: time.February}, now)
		if cs != mustDate("2024-02-01") || ce != mustDate("2024-02-29") {
			t.Errorf("current window = %v..%v, want all of Feb (leap year)", cs, ce)
		}
		if ps != mustDate("2024-01-01") || pe != mustDate("2024-01-31") {
			t.Errorf("previous window = %v..%v, want all of Jan", ps, pe)
		}
	})

	t.Run("past year", func(t *testing.T) {
		cs, ce, ps, pe := periodWindows(Period{Mode: PeriodYear, Year: 2023}, now)
		if cs != mustDate("2023-01-01") || ce != mustDate("2023-12-31") {
			t.Errorf("current window = %v..%v, want all of 2023", cs, ce)
		}
		if ps != mustDate("2022-01-01") || pe != mustDate("2022-12-31") {
			t.Errorf("previous window = %v..%v, want all of 2022", ps, pe)
		}
	})

	t.Run("current year clamps to today", func(t *testing.T) {
		_, ce, _, _ := periodWindows(Period{Mode: PeriodYear, Year: 2024}, now)
		if ce != now {
			t.Errorf("current year end = %v, want clamped to %v", ce, now)
		}
	})

	t.Run("all mode trails 90 days", func(t *testing.T) {
		cs, ce, ps, pe := periodWindows(Period{Mode: PeriodAll}, now)
		if ce != now || cs != now.AddDate(0, 0, -89) {
			t.Errorf("current window = %v..%v, want trailing 90 days", cs, ce)
		}
		if pe != cs.AddDate(0, 0, -1) || ps != pe.AddDate(0, 0, -89) {
			t.Errorf("previous window = %v..%v, want the 90 days before", ps, pe)
		}
	})
}

func TestFitnessMultiplier(t *testing.T) {
	tests := []struct {
		ctl      float64
		expected float64
	}{
		{50, 0.98},
		{41, 0.98},
		{30, 0.99},
		{20, 1.0},
		{10, 1.0},
		{5, 1.02},
	}
	for _, tt := range tests {
		if got := fitnessMultiplier(tt.ctl); got != tt.expected {
			t.Errorf("fitnessMultiplier(%v) = %v, want %v", tt.ctl, got, tt.expected)
		}
	}
}

func TestFreshnessMultiplier(t *testing.T) {
	tests := []struct {
		tsb      float64
		expected float64
	}{
		{20, 0.985},
		{10, 0.99},
		{0, 1.0},
		{-10, 1.015},
		{-20, 1.03},
	}
	for _, tt := range tests {
		if got := freshnessMultiplier(tt.tsb); got != tt.expected {
			t.Errorf("freshnessMultiplier(%v) = %v, want %v", tt.tsb, got, tt.expected)
		}
	}
}

func TestPredictRaces(t *testing.T) {
	zones := DefaultZones()
	now := mustDate("2024-06-30")
	period := Period{Mode: PeriodAll}

	t.Run("no activities", func(t *testing.T) {
		if got := PredictRaces(nil, period, zones, now); got != nil {
			t.Errorf("PredictRaces(no activities) = %+v, want nil", got)
		}
	})

	t.Run("no runs in the window", func(t *testing.T) {
		acts := []store.Activity{makeRun("2023-01-15", 10000, 3000, floatPtr(150))}
		if got := PredictRaces(acts, period, zones, now); got != nil {
			t.Errorf("PredictRaces(stale history) = %+v, want nil", got)
		}
	})

	t.Run("basic outlook", func(t *testing.T) {
		var acts []store.Activity
		for i := 0; i < 30; i += 3 {
			acts = append(acts, makeRun(dayKey(now, -i), 8000, 2400, floatPtr(150)))
		}
		ref := makeRun(dayKey(now, -5), 10000, 3000, floatPtr(155))
		acts = append(acts, ref)

		outlook := PredictRaces(acts, period, zones, now)
		if outlook == nil {
			t.Fatal("PredictRaces = nil, want outlook")
		}

		if outlook.ReferenceID != ref.ID {
			t.Errorf("ReferenceID = %d, want longest run %d", outlook.ReferenceID, ref.ID)
		}
		if len(outlook.Predictions) != 3 {
			t.Fatalf("len(Predictions) = %d, want 3", len(outlook.Predictions))
		}

		// Times scale with distance
		var prev float64
		for _, p := range outlook.Predictions {
			if p.PredictedSeconds <= prev {
				t.Errorf("%s predicted %v, want longer than previous target's %v", p.Name, p.PredictedSeconds, prev)
			}
			wantPace := p.TargetMeters / p.PredictedSeconds
			if math.Abs(p.PredictedPace-wantPace) > 1e-9 {
				t.Errorf("%s pace = %v, want %v", p.Name, p.PredictedPace, wantPace)
			}
			if p.DeltaSeconds != nil {
				t.Errorf("%s delta = %v, want nil without a previous period", p.Name, *p.DeltaSeconds)
			}
			prev = p.PredictedSeconds
		}

		// Predictions must stay within the multiplier envelope of the raw
		// Riegel extrapolation
		base := Riegel(ref.MovingTime, ref.Distance, Distance5K)
		got := outlook.Predictions[0].PredictedSeconds
		if got < base*0.98*0.985 || got > base*1.02*1.03 {
			t.Errorf("5K prediction %v outside multiplier envelope of base %v", got, base)
		}

		if outlook.Readiness < 0 || outlook.Readiness > 100 {
			t.Errorf("Readiness = %d, want 0..100", outlook.Readiness)
		}
		if outlook.ReadinessBand != ReadinessBand(outlook.Readiness) {
			t.Errorf("ReadinessBand = %q, inconsistent with score %d", outlook.ReadinessBand, outlook.Readiness)
		}
	})

	t.Run("delta against previous period", func(t *testing.T) {
		now := mustDate("2024-06-30")
		var acts []store.Activity
		// Previous 90-day window: slower longest run
		acts = append(acts, makeRun(dayKey(now, -120), 10000, 3300, floatPtr(150)))
		// Current window: faster reference
		acts = append(acts, makeRun(dayKey(now, -10), 10000, 3000, floatPtr(150)))

		outlook := PredictRaces(acts, period, zones, now)
		if outlook == nil {
			t.Fatal("PredictRaces = nil, want outlook")
		}

		for _, p := range outlook.Predictions {
			if p.DeltaSeconds == nil {
				t.Fatalf("%s delta = nil, want comparison against previous period", p.Name)
			}
			if !p.IsFaster || *p.DeltaSeconds >= 0 {
				t.Errorf("%s delta = %v IsFaster=%v, want negative delta and IsFaster",
					p.Name, *p.DeltaSeconds, p.IsFaster)
			}
		}
	})
}

func TestReadinessScore(t *testing.T) {
	zones := DefaultZones()
	anchor := mustDate("2024-06-30")

	t.Run("fitness and freshness alone", func(t *testing.T) {
		// CTL 40 maxes the fitness term, TSB 8 maxes freshness: 35+25
		got := ReadinessScore(nil, zones, anchor, 40, 8, 0)
		if got != 60 {
			t.Errorf("ReadinessScore(ctl=40, tsb=8, no runs) = %d, want 60", got)
		}
	})

	t.Run("full marks", func(t *testing.T) {
		var acts []store.Activity
		// Six quality sessions in the trailing 28 days
		for i := 0; i < 6; i++ {
			acts = append(acts, makeRun(dayKey(anchor, -2*i), 8000, 2400, floatPtr(160)))
		}
		// A 16 km long run inside the trailing 14 days
		acts = append(acts, makeRun(dayKey(anchor, -3), 16000, 5400, floatPtr(150)))

		got := ReadinessScore(acts, zones, anchor, 40, 8, 3.0)
		if got != 100 {
			t.Errorf("ReadinessScore(full marks) = %d, want 100", got)
		}
	})

	t.Run("untrained athlete", func(t *testing.T) {
		got := ReadinessScore(nil, zones, anchor, 0, 0, 0)
		// Fitness 0, freshness (1-8/25)*25 = 17, rest 0
		if got != 17 {
			t.Errorf("ReadinessScore(untrained) = %d, want 17", got)
		}
	})
}

func TestIsQualityRun(t *testing.T) {
	zones := DefaultZones()

	tests := []struct {
		name           string
		activity       store.Activity
		periodAvgSpeed float64
		expected       bool
	}{
		{
			name:     "too short regardless of effort",
			activity: store.Activity{Type: "Run", Distance: 4999, AverageHeartrate: floatPtr(180)},
			expected: false,
		},
		{
			name:     "hard by heart rate",
			activity: store.Activity{Type: "Run", Distance: 5000, AverageHeartrate: floatPtr(152)}, // 0.82*185=151.7
			expected: true,
		},
		{
			name:           "hard by relative pace",
			activity:       store.Activity{Type: "Run", Distance: 6000, AverageSpeed: 3.1},
			periodAvgSpeed: 3.0, // threshold 3.09
			expected:       true,
		},
		{
			name:     "hard by suffer score",
			activity: store.Activity{Type: "Run", Distance: 5000, SufferScore: floatPtr(50)},
			expected: true,
		},
		{
			name:           "easy long run",
			activity:       store.Activity{Type: "Run", Distance: 12000, AverageSpeed: 2.5, AverageHeartrate: floatPtr(130)},
			periodAvgSpeed: 3.0,
			expected:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQualityRun(tt.activity, zones, tt.periodAvgSpeed); got != tt.expected {
				t.Errorf("isQualityRun() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadinessBand(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, "ready"},
		{75, "ready"},
		{74, "building"},
		{55, "building"},
		{54, "base"},
		{0, "base"},
	}
	for _, tt := range tests {
		if got := ReadinessBand(tt.score); got != tt.expected {
			t.Errorf("ReadinessBand(%d) = %q, want %q", tt.score, got, tt.expected)
		}
	}
}
