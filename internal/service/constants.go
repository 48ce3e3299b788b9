package service

const (
	// Time windows
	LoadChartDays = 90
	ChartWeeks    = 12

	// Display limits
	RecentRunsLimit = 10
)
