package entity

import "time"

type Voting struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsActive reports whether the voting window contains the given moment.
func (v Voting) IsActive(now time.Time) bool {
	return !now.Before(v.StartDate) && !now.After(v.EndDate)
}

// IsExpired reports whether the voting window has already closed.
func (v Voting) IsExpired(now time.Time) bool {
	return v.EndDate.Before(now)
}
