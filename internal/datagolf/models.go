// Package datagolf is the client for the external golf-stats feed.
// The feed supplies the raw material the scoring pipeline runs on: the season
// schedule, pre-tournament field updates (tee times, withdrawals), and live
// in-play stats for every golfer on the course. This file defines the JSON
// shapes those endpoints return; client.go does the fetching.
package datagolf

// ScheduleEvent is one tournament on the feed's season schedule.
type ScheduleEvent struct {
	EventID    int    `json:"event_id"`
	EventName  string `json:"event_name"`
	CourseName string `json:"course"`
	StartDate  string `json:"start_date"` // "YYYY-MM-DD"
	Location   string `json:"location"`
}

// Schedule is the response of the season-schedule endpoint.
type Schedule struct {
	Tour     string          `json:"tour"`
	Season   int             `json:"season"`
	Schedule []ScheduleEvent `json:"schedule"`
}

// FieldGolfer is one golfer in a pre-tournament field update.
type FieldGolfer struct {
	GolferID  int     `json:"dg_id"`
	Name      string  `json:"player_name"`
	Country   string  `json:"country"`
	TeeTimeR1 *string `json:"r1_teetime"` // nil once round 1 is underway
	Withdrew  bool    `json:"wd"`
}

// FieldUpdate is the response of the field-updates endpoint: the confirmed
// field for the current event, refreshed as golfers commit or withdraw.
type FieldUpdate struct {
	EventName    string        `json:"event_name"`
	CurrentRound int           `json:"current_round"`
	Field        []FieldGolfer `json:"field"`
}

// LiveGolfer is one golfer's live in-play line: where they stand, what they
// have shot, and how far through the current round they are.
type LiveGolfer struct {
	GolferID int      `json:"dg_id"`
	Name     string   `json:"player_name"`
	Position string   `json:"current_pos"`   // "1", "T4", "CUT", "WD", ...
	Total    float64  `json:"current_score"` // strokes relative to par for the tournament
	Today    float64  `json:"today"`         // strokes relative to par in the current round
	Thru     int      `json:"thru"`          // holes completed in the current round (0-18)
	Round    int      `json:"round"`         // which round the golfer is playing
	R1       *float64 `json:"R1"`            // raw strokes per round; nil until the round is posted
	R2       *float64 `json:"R2"`
	R3       *float64 `json:"R3"`
	R4       *float64 `json:"R4"`
}

// LiveStats is the response of the in-play endpoint for one event.
type LiveStats struct {
	EventName    string       `json:"event_name"`
	CurrentRound int          `json:"current_round"`
	Golfers      []LiveGolfer `json:"live_stats"`
}
