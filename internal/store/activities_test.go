package store

import (
	"errors"
	"testing"
)

// setupTestStore creates an in-memory store for testing
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestUpsertAndGetActivity(t *testing.T) {
	s := setupTestStore(t)

	a := &Activity{
		ID:                 42,
		Name:               "Morning Run",
		Type:               "Run",
		SportType:          "TrailRun",
		StartDateLocal:     "2024-03-10T06:00:00Z",
		Distance:           8000,
		MovingTime:         2700,
		ElapsedTime:        2800,
		TotalElevationGain: 120,
		AverageSpeed:       2.96,
		AverageHeartrate:   floatPtr(152),
		SufferScore:        floatPtr(61),
	}

	if err := s.UpsertActivity(a); err != nil {
		t.Fatalf("UpsertActivity() error = %v", err)
	}

	got, err := s.GetActivity(42)
	if err != nil {
		t.Fatalf("GetActivity() error = %v", err)
	}
	if got.Name != "Morning Run" || got.SportType != "TrailRun" {
		t.Errorf("GetActivity() = %+v, want Morning Run / TrailRun", got)
	}
	if got.StartDateLocal != "2024-03-10T06:00:00Z" {
		t.Errorf("StartDateLocal = %q, want raw timestamp preserved", got.StartDateLocal)
	}
	if got.AverageHeartrate == nil || *got.AverageHeartrate != 152 {
		t.Errorf("AverageHeartrate = %v, want 152", got.AverageHeartrate)
	}
	if got.Calories != nil {
		t.Errorf("Calories = %v, want nil", got.Calories)
	}

	// Upsert again with updated distance; should not duplicate
	a.Distance = 8100
	if err := s.UpsertActivity(a); err != nil {
		t.Fatalf("UpsertActivity() second time error = %v", err)
	}

	count, err := s.CountActivities()
	if err != nil {
		t.Fatalf("CountActivities() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountActivities() = %d, want 1", count)
	}

	got, err = s.GetActivity(42)
	if err != nil {
		t.Fatalf("GetActivity() after upsert error = %v", err)
	}
	if got.Distance != 8100 {
		t.Errorf("Distance after upsert = %v, want 8100", got.Distance)
	}
}

func TestGetActivityNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetActivity(999)
	if !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("GetActivity(999) error = %v, want ErrActivityNotFound", err)
	}
}

func TestListActivitiesChronological(t *testing.T) {
	s := setupTestStore(t)

	// Insert out of order
	dates := []string{"2024-02-10T07:00:00", "2024-01-05T18:30:00", "2024-01-20T09:00:00"}
	for i, d := range dates {
		a := &Activity{
			ID:             int64(i + 1),
			Name:           "Run",
			Type:           "Run",
			StartDateLocal: d,
			Distance:       5000,
			MovingTime:     1500,
			ElapsedTime:    1500,
		}
		if err := s.UpsertActivity(a); err != nil {
			t.Fatalf("UpsertActivity() error = %v", err)
		}
	}

	activities, err := s.ListActivities()
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if len(activities) != 3 {
		t.Fatalf("ListActivities() returned %d activities, want 3", len(activities))
	}

	want := []string{"2024-01-05T18:30:00", "2024-01-20T09:00:00", "2024-02-10T07:00:00"}
	for i, a := range activities {
		if a.StartDateLocal != want[i] {
			t.Errorf("activity %d StartDateLocal = %q, want %q", i, a.StartDateLocal, want[i])
		}
	}
}
