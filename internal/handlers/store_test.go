package handlers_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mkrylova/awards-voting/internal/entity"
	"github.com/mkrylova/awards-voting/internal/repo"
)

// memStore is a map-backed storage for handler tests. It mirrors the
// uniqueness guarantees of the postgres layer, including the one vote per
// user and nomination constraint.
type memStore struct {
	mu sync.Mutex

	nextID       int64
	votings      map[int64]entity.Voting
	nominations  map[int64]entity.Nomination
	participants map[int64]entity.Participant
	votes        map[int64]entity.Vote
	logs         []entity.ActionLog
}

func newMemStore() *memStore {
	return &memStore{
		votings:      make(map[int64]entity.Voting),
		nominations:  make(map[int64]entity.Nomination),
		participants: make(map[int64]entity.Participant),
		votes:        make(map[int64]entity.Vote),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) SaveVoting(_ context.Context, title, description string, startDate, endDate time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.id()
	now := time.Now()
	m.votings[id] = entity.Voting{
		ID: id, Title: title, Description: description,
		StartDate: startDate, EndDate: endDate,
		CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (m *memStore) GetVotingByID(_ context.Context, id int64) (entity.Voting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	voting, ok := m.votings[id]
	if !ok {
		return entity.Voting{}, repo.ErrVotingNotFound
	}
	return voting, nil
}

func (m *memStore) ListVotings(_ context.Context, filter repo.VotingFilter) ([]entity.Voting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []entity.Voting
	for _, v := range m.votings {
		if filter.Title != "" && !strings.Contains(v.Title, filter.Title) {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(v.Title, filter.Search) &&
			!strings.Contains(v.Description, filter.Search) {
			continue
		}
		if filter.ActiveAt != nil && !v.IsActive(*filter.ActiveAt) {
			continue
		}
		if filter.ExpiredAt != nil && !v.IsExpired(*filter.ExpiredAt) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateVoting(_ context.Context, id int64, title, description string, startDate, endDate time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	voting, ok := m.votings[id]
	if !ok {
		return repo.ErrVotingNotFound
	}
	voting.Title, voting.Description = title, description
	voting.StartDate, voting.EndDate = startDate, endDate
	voting.UpdatedAt = time.Now()
	m.votings[id] = voting
	return nil
}

func (m *memStore) CloseVoting(_ context.Context, id int64, endDate time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	voting, ok := m.votings[id]
	if !ok {
		return repo.ErrVotingNotFound
	}
	voting.EndDate = endDate
	voting.UpdatedAt = time.Now()
	m.votings[id] = voting
	return nil
}

func (m *memStore) DeleteVoting(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.votings[id]; !ok {
		return repo.ErrVotingNotFound
	}
	delete(m.votings, id)
	return nil
}

func (m *memStore) SaveNomination(_ context.Context, votingID int64, title, description string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.votings[votingID]; !ok {
		return 0, repo.ErrVotingNotFound
	}
	for _, n := range m.nominations {
		if n.VotingID == votingID && n.Title == title {
			return 0, repo.ErrNominationExists
		}
	}
	id := m.id()
	m.nominations[id] = entity.Nomination{ID: id, VotingID: votingID, Title: title, Description: description}
	return id, nil
}

func (m *memStore) GetNominationByID(_ context.Context, id int64) (entity.Nomination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	nomination, ok := m.nominations[id]
	if !ok {
		return entity.Nomination{}, repo.ErrNominationNotFound
	}
	return nomination, nil
}

func (m *memStore) ListNominations(_ context.Context, filter repo.NominationFilter) ([]entity.Nomination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []entity.Nomination
	for _, n := range m.nominations {
		if filter.VotingID != nil && n.VotingID != *filter.VotingID {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateNomination(_ context.Context, id int64, title, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	nomination, ok := m.nominations[id]
	if !ok {
		return repo.ErrNominationNotFound
	}
	nomination.Title, nomination.Description = title, description
	m.nominations[id] = nomination
	return nil
}

func (m *memStore) DeleteNomination(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.nominations[id]; !ok {
		return repo.ErrNominationNotFound
	}
	delete(m.nominations, id)
	return nil
}

func (m *memStore) SaveParticipant(_ context.Context, nominationID int64, name, description string, avatarURL *string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.nominations[nominationID]; !ok {
		return 0, repo.ErrNominationNotFound
	}
	for _, p := range m.participants {
		if p.NominationID == nominationID && p.Name == name {
			return 0, repo.ErrParticipantExists
		}
	}
	id := m.id()
	m.participants[id] = entity.Participant{
		ID: id, NominationID: nominationID, Name: name,
		Description: description, AvatarURL: avatarURL, CreatedAt: time.Now(),
	}
	return id, nil
}

func (m *memStore) GetParticipantByID(_ context.Context, id int64) (entity.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	participant, ok := m.participants[id]
	if !ok {
		return entity.Participant{}, repo.ErrParticipantNotFound
	}
	participant.VotesCount = m.countVotes(id)
	return participant, nil
}

func (m *memStore) ListParticipants(_ context.Context, filter repo.ParticipantFilter) ([]entity.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []entity.Participant
	for _, p := range m.participants {
		if filter.NominationID != nil && p.NominationID != *filter.NominationID {
			continue
		}
		p.VotesCount = m.countVotes(p.ID)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) PopularParticipants(_ context.Context, limit int) ([]entity.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []entity.Participant
	for _, p := range m.participants {
		p.VotesCount = m.countVotes(p.ID)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VotesCount != out[j].VotesCount {
			return out[i].VotesCount > out[j].VotesCount
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) UpdateParticipant(_ context.Context, id int64, name, description string, avatarURL *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	participant, ok := m.participants[id]
	if !ok {
		return repo.ErrParticipantNotFound
	}
	participant.Name, participant.Description, participant.AvatarURL = name, description, avatarURL
	m.participants[id] = participant
	return nil
}

func (m *memStore) DeleteParticipant(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.participants[id]; !ok {
		return repo.ErrParticipantNotFound
	}
	delete(m.participants, id)
	return nil
}

func (m *memStore) countVotes(participantID int64) int64 {
	var count int64
	for _, v := range m.votes {
		if v.ParticipantID == participantID {
			count++
		}
	}
	return count
}

func (m *memStore) SaveVote(_ context.Context, userID, participantID int64, votedAt time.Time) (entity.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	participant, ok := m.participants[participantID]
	if !ok {
		return entity.Vote{}, repo.ErrParticipantNotFound
	}
	for _, v := range m.votes {
		if v.UserID == userID && v.NominationID == participant.NominationID {
			return entity.Vote{}, repo.ErrAlreadyVoted
		}
	}
	id := m.id()
	vote := entity.Vote{
		ID: id, UserID: userID, ParticipantID: participantID,
		NominationID: participant.NominationID, VotedAt: votedAt,
	}
	m.votes[id] = vote
	return vote, nil
}

func (m *memStore) GetVoteByID(_ context.Context, id int64) (entity.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vote, ok := m.votes[id]
	if !ok {
		return entity.Vote{}, repo.ErrVoteNotFound
	}
	return vote, nil
}

func (m *memStore) ListVotesByUser(_ context.Context, userID int64, filter repo.VoteFilter) ([]entity.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []entity.Vote
	for _, v := range m.votes {
		if v.UserID != userID {
			continue
		}
		if filter.ParticipantID != nil && v.ParticipantID != *filter.ParticipantID {
			continue
		}
		if filter.NominationID != nil && v.NominationID != *filter.NominationID {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].VotedAt.Equal(out[j].VotedAt) {
			return out[i].VotedAt.After(out[j].VotedAt)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memStore) DeleteVotesByUserNomination(_ context.Context, userID, nominationID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for id, v := range m.votes {
		if v.UserID == userID && v.NominationID == nominationID {
			delete(m.votes, id)
			removed++
		}
	}
	return removed, nil
}

func (m *memStore) DeleteVote(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.votes[id]; !ok {
		return repo.ErrVoteNotFound
	}
	delete(m.votes, id)
	return nil
}

func (m *memStore) GetVotingByParticipantID(_ context.Context, participantID int64) (entity.Voting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	participant, ok := m.participants[participantID]
	if !ok {
		return entity.Voting{}, repo.ErrParticipantNotFound
	}
	nomination, ok := m.nominations[participant.NominationID]
	if !ok {
		return entity.Voting{}, repo.ErrNominationNotFound
	}
	voting, ok := m.votings[nomination.VotingID]
	if !ok {
		return entity.Voting{}, repo.ErrVotingNotFound
	}
	return voting, nil
}

func (m *memStore) SaveActionLog(_ context.Context, entry *entity.ActionLog) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = m.id()
	m.logs = append(m.logs, *entry)
	return entry.ID, nil
}

func (m *memStore) GetActionLogs(_ context.Context) ([]entity.ActionLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]entity.ActionLog, len(m.logs))
	copy(out, m.logs)
	return out, nil
}
