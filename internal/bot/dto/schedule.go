package dto

import "time"

// ScheduleStatusResponse is the DTO for the scheduler status endpoint.
type ScheduleStatusResponse struct {
	Mode    string     `json:"mode"`
	NextRun *time.Time `json:"next_run"`
	LastRun *time.Time `json:"last_run"`
}

// HealthResponse is the DTO for the liveness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// NewScheduleStatusResponse maps zero times to null.
func NewScheduleStatusResponse(mode string, nextRun, lastRun time.Time) ScheduleStatusResponse {
	return ScheduleStatusResponse{
		Mode:    mode,
		NextRun: optionalTime(nextRun),
		LastRun: optionalTime(lastRun),
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
