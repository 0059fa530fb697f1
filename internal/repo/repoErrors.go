package repo

import "errors"

var (
	ErrVotingNotFound      = errors.New("voting not found")
	ErrNominationNotFound  = errors.New("nomination not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrVoteNotFound        = errors.New("vote not found")

	ErrNominationExists  = errors.New("nomination with this title already exists in the voting")
	ErrParticipantExists = errors.New("participant with this name already exists in the nomination")
	ErrAlreadyVoted      = errors.New("user already voted in this nomination")
)
