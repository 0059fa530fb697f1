package repo

import "time"

// VotingFilter narrows voting listings. Zero values mean "no restriction".
type VotingFilter struct {
	Title      string     // substring match on title
	Search     string     // substring match on title OR description
	ActiveAt   *time.Time // start_date <= t <= end_date
	ExpiredAt  *time.Time // end_date < t
	StartAfter *time.Time
	EndBefore  *time.Time
	OrderBy    string // start_date, end_date or created_at
	Desc       bool
}

type NominationFilter struct {
	VotingID *int64
	Search   string // substring match on title OR description
}

type ParticipantFilter struct {
	NominationID *int64
	Search       string // substring match on name OR description
}

type VoteFilter struct {
	ParticipantID *int64
	NominationID  *int64
	VotingID      *int64
	Limit         int
}
