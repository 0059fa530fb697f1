package entity

type Nomination struct {
	ID          int64  `json:"id"`
	VotingID    int64  `json:"voting_id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// ParticipantsCount is computed by the storage on reads, never stored.
	ParticipantsCount int64 `json:"participants_count"`
}
