package timetrackingdto

// TimeSummaryOutput mirrors the per-order totals shown on the dashboard.
type TimeSummaryOutput struct {
	OrderID            string
	TotalLoggedHours   float64
	TotalApprovedHours float64
	TotalBilledHours   float64
	TotalPaidOutHours  float64
	TotalBilledAmount  int64
}
