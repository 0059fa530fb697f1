package entity

import "time"

type Participant struct {
	ID           int64     `json:"id"`
	NominationID int64     `json:"nomination_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// VotesCount is computed by the storage on reads, never stored.
	VotesCount int64 `json:"votes_count"`
}
