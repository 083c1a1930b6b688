package domain

import "time"

// Question is one entry of the static question catalog. Never mutated at runtime.
type Question struct {
	QuestionID string   `json:"question_id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
}

// Credit records the winner of one question within one round.
// At most one credit may exist per (round, question) pair; the per-client
// identity is informational and deliberately not part of the uniqueness key.
type Credit struct {
	RoundID    string    `json:"round_id"`
	QuestionID string    `json:"question_id"`
	ClientID   string    `json:"client_id"`
	CreateTime time.Time `json:"create_time"`
}

// WinnerEntry is one row of the winner tally, sorted by wins descending.
type WinnerEntry struct {
	ClientID string `json:"client_id"`
	Wins     int64  `json:"wins"`
}
