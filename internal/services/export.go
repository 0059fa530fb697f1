package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mkrylova/awards-voting/internal/repo"
)

const exportTimeLayout = "02.01.2006 15:04"

// ExportVotingsCSV writes all votings as CSV. The title column carries the
// current status, untitled rows are skipped.
func (s *AwardsVoting) ExportVotingsCSV(ctx context.Context, w io.Writer) error {
	const op = "AwardsVoting.ExportVotingsCSV"

	votings, err := s.votings.ListVotings(ctx, repo.VotingFilter{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title", "start_date", "end_date", "created_at", "description"}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, voting := range votings {
		if strings.TrimSpace(voting.Title) == "" {
			continue
		}

		status := "FINISHED"
		if voting.IsActive(now) {
			status = "ACTIVE"
		}

		record := []string{
			strconv.FormatInt(voting.ID, 10),
			fmt.Sprintf("%s [%s]", voting.Title, status),
			voting.StartDate.Format(exportTimeLayout),
			voting.EndDate.Format(exportTimeLayout),
			voting.CreatedAt.Format(exportTimeLayout),
			voting.Description,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
