// Package service provides read-only queries over the activity store for the
// TUI, aggregating the analysis package's metrics into display-ready data.
package service

import (
	"fmt"

	"runboard/internal/analysis"
	"runboard/internal/store"
)

// QueryService provides read-only queries for the TUI
type QueryService struct {
	store *store.Store
	zones analysis.HRZones
}

// NewQueryService creates a new query service
func NewQueryService(s *store.Store, zones analysis.HRZones) *QueryService {
	if zones.MaxHR == 0 {
		zones = analysis.DefaultZones()
	}
	return &QueryService{store: s, zones: zones}
}

// Zones returns the configured heart rate zones
func (q *QueryService) Zones() analysis.HRZones {
	return q.zones
}

// loadRuns fetches the full chronological activity history and the subset of
// run-like activities. Most metrics want the runs; fitness replay wants both.
func (q *QueryService) loadRuns() (all, runs []store.Activity, err error) {
	all, err = q.store.ListActivities()
	if err != nil {
		return nil, nil, fmt.Errorf("list activities: %w", err)
	}
	for _, a := range all {
		if analysis.IsRunLike(a) {
			runs = append(runs, a)
		}
	}
	return all, runs, nil
}
