package services

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mkrylova/awards-voting/internal/entity"
	"github.com/mkrylova/awards-voting/internal/events"
	"github.com/mkrylova/awards-voting/internal/repo"
)

// fakeStorage is an in-memory stand-in for the postgres storage. It keeps the
// same uniqueness semantics, including the (user, nomination) constraint that
// decides vote races, guarded here by the mutex.
type fakeStorage struct {
	mu     sync.Mutex
	nextID int64

	votings      map[int64]entity.Voting
	nominations  map[int64]entity.Nomination
	participants map[int64]entity.Participant
	votes        map[int64]entity.Vote
	logs         []entity.ActionLog
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		votings:      make(map[int64]entity.Voting),
		nominations:  make(map[int64]entity.Nomination),
		participants: make(map[int64]entity.Participant),
		votes:        make(map[int64]entity.Vote),
	}
}

func (f *fakeStorage) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStorage) SaveVoting(_ context.Context, title, description string, startDate, endDate time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.id()
	f.votings[id] = entity.Voting{
		ID: id, Title: title, Description: description,
		StartDate: startDate, EndDate: endDate,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	return id, nil
}

func (f *fakeStorage) GetVotingByID(_ context.Context, id int64) (entity.Voting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	voting, ok := f.votings[id]
	if !ok {
		return entity.Voting{}, repo.ErrVotingNotFound
	}
	return voting, nil
}

func (f *fakeStorage) ListVotings(_ context.Context, filter repo.VotingFilter) ([]entity.Voting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var votings []entity.Voting
	for _, voting := range f.votings {
		if filter.Title != "" && !strings.Contains(strings.ToLower(voting.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(voting.Title), s) &&
				!strings.Contains(strings.ToLower(voting.Description), s) {
				continue
			}
		}
		if filter.ActiveAt != nil && !voting.IsActive(*filter.ActiveAt) {
			continue
		}
		if filter.ExpiredAt != nil && !voting.IsExpired(*filter.ExpiredAt) {
			continue
		}
		if filter.StartAfter != nil && voting.StartDate.Before(*filter.StartAfter) {
			continue
		}
		if filter.EndBefore != nil && voting.EndDate.After(*filter.EndBefore) {
			continue
		}
		votings = append(votings, voting)
	}
	sort.Slice(votings, func(i, j int) bool { return votings[i].ID < votings[j].ID })
	return votings, nil
}

func (f *fakeStorage) UpdateVoting(_ context.Context, id int64, title, description string, startDate, endDate time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	voting, ok := f.votings[id]
	if !ok {
		return repo.ErrVotingNotFound
	}
	voting.Title, voting.Description = title, description
	voting.StartDate, voting.EndDate = startDate, endDate
	voting.UpdatedAt = time.Now()
	f.votings[id] = voting
	return nil
}

func (f *fakeStorage) CloseVoting(_ context.Context, id int64, endDate time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	voting, ok := f.votings[id]
	if !ok {
		return repo.ErrVotingNotFound
	}
	voting.EndDate = endDate
	f.votings[id] = voting
	return nil
}

func (f *fakeStorage) DeleteVoting(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.votings[id]; !ok {
		return repo.ErrVotingNotFound
	}
	delete(f.votings, id)
	for nid, nomination := range f.nominations {
		if nomination.VotingID != id {
			continue
		}
		delete(f.nominations, nid)
		for pid, participant := range f.participants {
			if participant.NominationID != nid {
				continue
			}
			delete(f.participants, pid)
		}
		for vid, vote := range f.votes {
			if vote.NominationID == nid {
				delete(f.votes, vid)
			}
		}
	}
	return nil
}

func (f *fakeStorage) SaveNomination(_ context.Context, votingID int64, title, description string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.votings[votingID]; !ok {
		return 0, repo.ErrVotingNotFound
	}
	for _, nomination := range f.nominations {
		if nomination.VotingID == votingID && nomination.Title == title {
			return 0, repo.ErrNominationExists
		}
	}
	id := f.id()
	f.nominations[id] = entity.Nomination{ID: id, VotingID: votingID, Title: title, Description: description}
	return id, nil
}

func (f *fakeStorage) GetNominationByID(_ context.Context, id int64) (entity.Nomination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	nomination, ok := f.nominations[id]
	if !ok {
		return entity.Nomination{}, repo.ErrNominationNotFound
	}
	for _, participant := range f.participants {
		if participant.NominationID == id {
			nomination.ParticipantsCount++
		}
	}
	return nomination, nil
}

func (f *fakeStorage) ListNominations(_ context.Context, filter repo.NominationFilter) ([]entity.Nomination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var nominations []entity.Nomination
	for id, nomination := range f.nominations {
		if filter.VotingID != nil && nomination.VotingID != *filter.VotingID {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(nomination.Title), s) &&
				!strings.Contains(strings.ToLower(nomination.Description), s) {
				continue
			}
		}
		for _, participant := range f.participants {
			if participant.NominationID == id {
				nomination.ParticipantsCount++
			}
		}
		nominations = append(nominations, nomination)
	}
	sort.Slice(nominations, func(i, j int) bool { return nominations[i].Title < nominations[j].Title })
	return nominations, nil
}

func (f *fakeStorage) UpdateNomination(_ context.Context, id int64, title, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	nomination, ok := f.nominations[id]
	if !ok {
		return repo.ErrNominationNotFound
	}
	for other, n := range f.nominations {
		if other != id && n.VotingID == nomination.VotingID && n.Title == title {
			return repo.ErrNominationExists
		}
	}
	nomination.Title, nomination.Description = title, description
	f.nominations[id] = nomination
	return nil
}

func (f *fakeStorage) DeleteNomination(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.nominations[id]; !ok {
		return repo.ErrNominationNotFound
	}
	delete(f.nominations, id)
	for pid, participant := range f.participants {
		if participant.NominationID == id {
			delete(f.participants, pid)
		}
	}
	for vid, vote := range f.votes {
		if vote.NominationID == id {
			delete(f.votes, vid)
		}
	}
	return nil
}

func (f *fakeStorage) SaveParticipant(_ context.Context, nominationID int64, name, description string, avatarURL *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.nominations[nominationID]; !ok {
		return 0, repo.ErrNominationNotFound
	}
	for _, participant := range f.participants {
		if participant.NominationID == nominationID && participant.Name == name {
			return 0, repo.ErrParticipantExists
		}
	}
	id := f.id()
	f.participants[id] = entity.Participant{
		ID: id, NominationID: nominationID, Name: name,
		Description: description, AvatarURL: avatarURL, CreatedAt: time.Now(),
	}
	return id, nil
}

func (f *fakeStorage) GetParticipantByID(_ context.Context, id int64) (entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	participant, ok := f.participants[id]
	if !ok {
		return entity.Participant{}, repo.ErrParticipantNotFound
	}
	participant.VotesCount = f.votesFor(id)
	return participant, nil
}

func (f *fakeStorage) votesFor(participantID int64) int64 {
	var n int64
	for _, vote := range f.votes {
		if vote.ParticipantID == participantID {
			n++
		}
	}
	return n
}

func (f *fakeStorage) ListParticipants(_ context.Context, filter repo.ParticipantFilter) ([]entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var participants []entity.Participant
	for id, participant := range f.participants {
		if filter.NominationID != nil && participant.NominationID != *filter.NominationID {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(participant.Name), s) &&
				!strings.Contains(strings.ToLower(participant.Description), s) {
				continue
			}
		}
		participant.VotesCount = f.votesFor(id)
		participants = append(participants, participant)
	}
	sort.Slice(participants, func(i, j int) bool { return participants[i].Name < participants[j].Name })
	return participants, nil
}

func (f *fakeStorage) PopularParticipants(_ context.Context, limit int) ([]entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var participants []entity.Participant
	for id, participant := range f.participants {
		participant.VotesCount = f.votesFor(id)
		participants = append(participants, participant)
	}
	sort.Slice(participants, func(i, j int) bool {
		if participants[i].VotesCount != participants[j].VotesCount {
			return participants[i].VotesCount > participants[j].VotesCount
		}
		if participants[i].Name != participants[j].Name {
			return participants[i].Name < participants[j].Name
		}
		return participants[i].ID < participants[j].ID
	})
	if len(participants) > limit {
		participants = participants[:limit]
	}
	return participants, nil
}

func (f *fakeStorage) UpdateParticipant(_ context.Context, id int64, name, description string, avatarURL *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	participant, ok := f.participants[id]
	if !ok {
		return repo.ErrParticipantNotFound
	}
	participant.Name, participant.Description, participant.AvatarURL = name, description, avatarURL
	f.participants[id] = participant
	return nil
}

func (f *fakeStorage) DeleteParticipant(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.participants[id]; !ok {
		return repo.ErrParticipantNotFound
	}
	delete(f.participants, id)
	for vid, vote := range f.votes {
		if vote.ParticipantID == id {
			delete(f.votes, vid)
		}
	}
	return nil
}

func (f *fakeStorage) SaveVote(_ context.Context, userID, participantID int64, votedAt time.Time) (entity.Vote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	participant, ok := f.participants[participantID]
	if !ok {
		return entity.Vote{}, repo.ErrParticipantNotFound
	}
	for _, vote := range f.votes {
		if vote.UserID == userID && vote.NominationID == participant.NominationID {
			return entity.Vote{}, repo.ErrAlreadyVoted
		}
	}
	id := f.id()
	vote := entity.Vote{
		ID: id, UserID: userID, ParticipantID: participantID,
		NominationID: participant.NominationID, VotedAt: votedAt,
	}
	f.votes[id] = vote
	return vote, nil
}

func (f *fakeStorage) GetVoteByID(_ context.Context, id int64) (entity.Vote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	vote, ok := f.votes[id]
	if !ok {
		return entity.Vote{}, repo.ErrVoteNotFound
	}
	return vote, nil
}

func (f *fakeStorage) ListVotesByUser(_ context.Context, userID int64, filter repo.VoteFilter) ([]entity.Vote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var votes []entity.Vote
	for _, vote := range f.votes {
		if vote.UserID != userID {
			continue
		}
		if filter.ParticipantID != nil && vote.ParticipantID != *filter.ParticipantID {
			continue
		}
		if filter.NominationID != nil && vote.NominationID != *filter.NominationID {
			continue
		}
		if filter.VotingID != nil {
			nomination, ok := f.nominations[vote.NominationID]
			if !ok || nomination.VotingID != *filter.VotingID {
				continue
			}
		}
		votes = append(votes, vote)
	}
	sort.Slice(votes, func(i, j int) bool {
		if !votes[i].VotedAt.Equal(votes[j].VotedAt) {
			return votes[i].VotedAt.After(votes[j].VotedAt)
		}
		return votes[i].ID > votes[j].ID
	})
	if filter.Limit > 0 && len(votes) > filter.Limit {
		votes = votes[:filter.Limit]
	}
	return votes, nil
}

func (f *fakeStorage) DeleteVotesByUserNomination(_ context.Context, userID, nominationID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var removed int64
	for id, vote := range f.votes {
		if vote.UserID == userID && vote.NominationID == nominationID {
			delete(f.votes, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeStorage) DeleteVote(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.votes[id]; !ok {
		return repo.ErrVoteNotFound
	}
	delete(f.votes, id)
	return nil
}

func (f *fakeStorage) GetVotingByParticipantID(_ context.Context, participantID int64) (entity.Voting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	participant, ok := f.participants[participantID]
	if !ok {
		return entity.Voting{}, repo.ErrParticipantNotFound
	}
	nomination, ok := f.nominations[participant.NominationID]
	if !ok {
		return entity.Voting{}, repo.ErrParticipantNotFound
	}
	voting, ok := f.votings[nomination.VotingID]
	if !ok {
		return entity.Voting{}, repo.ErrParticipantNotFound
	}
	return voting, nil
}

func (f *fakeStorage) SaveActionLog(_ context.Context, log *entity.ActionLog) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	log.ID = f.id()
	log.CreatedAt = time.Now()
	f.logs = append(f.logs, *log)
	return log.ID, nil
}

func (f *fakeStorage) GetActionLogs(_ context.Context) ([]entity.ActionLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	logs := make([]entity.ActionLog, len(f.logs))
	copy(logs, f.logs)
	return logs, nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []events.VoteEvent
}

func (p *capturingPublisher) Publish(_ context.Context, event events.VoteEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func newTestService(storage *fakeStorage, now time.Time) (*AwardsVoting, *capturingPublisher) {
	publisher := &capturingPublisher{}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	service := NewAwardsVoting(log, storage, storage, storage, storage, storage, publisher).
		WithClock(func() time.Time { return now })
	return service, publisher
}
