package dto

import "time"

type HealthResponse struct {
	Database  string    `json:"database"`
	Redis     string    `json:"redis"`
	CheckedAt time.Time `json:"checked_at"`
}

func componentState(up bool) string {
	if up {
		return "up"
	}
	return "down"
}

func NewHealthResponse(database, redis bool, checkedAt time.Time) HealthResponse {
	return HealthResponse{
		Database:  componentState(database),
		Redis:     componentState(redis),
		CheckedAt: checkedAt,
	}
}
