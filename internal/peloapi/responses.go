package peloapi

import (
	"github.com/velimirb/riderewind/internal/music"
	"github.com/velimirb/riderewind/internal/workout"
)

type workoutsPageResponse struct {
	Data      []workout.FeedWorkout `json:"data"`
	Page      int                   `json:"page"`
	PageCount int                   `json:"page_count"`
	Total     int                   `json:"total"`
}

type calendarResponse struct {
	Months []calendarMonth `json:"months"`
}

type calendarMonth struct {
	Year       int   `json:"year"`
	Month      int   `json:"month"`
	ActiveDays []int `json:"active_days"`
}

type rideSongsResponse struct {
	Data []music.SongPlay `json:"data"`
}
