package controller

import (
	"fmt"
	"strings"

	"github.com/Alt0Pal0/Gretch-2025-Rankings/model"
)

// priorRank is where a player ranked in the prior version. Players are
// matched across versions by name only, so a rename or duplicate name makes
// the delta baseline ambiguous. Those cases show up as publish warnings.
type priorRank struct {
	pos  model.Position
	rank int32
}

// snapshotRanks builds the name lookup used for delta calculation from the
// prior version's records. Last write wins for duplicate names.
func snapshotRanks(records []model.PlayerRecord) (map[string]priorRank, []string) {
	snapshot := make(map[string]priorRank, len(records))
	var warnings []string

	for _, rec := range records {
		if _, found := snapshot[rec.Name]; found {
			warnings = append(warnings,
				fmt.Sprintf("duplicate name %q in prior version, rank deltas use its last record", rec.Name))
		}
		snapshot[rec.Name] = priorRank{pos: rec.Position, rank: rec.Rank}
	}

	return snapshot, warnings
}

// rankPlayers validates the proposed set and materializes its player records:
// every player gets positionRank = 1-based index in its proposed list, and a
// rank delta against the prior snapshot. The proposed order IS the ranking;
// nothing is re-sorted here.
//
// Delta rules: same name and position in the prior version means
// priorRank - newRank (positive = promoted toward rank 1). New players and
// players that switched position groups get 0.
func rankPlayers(set *model.PlayerSet, prior map[string]priorRank) ([]model.PlayerRecord, []string, error) {
	records := make([]model.PlayerRecord, 0, set.Size())
	var warnings []string

	for _, pos := range model.RankedPositions {
		seen := make(map[string]bool)

		for i, in := range set.ForPosition(pos) {
			if err := validatePlayerInput(&in); err != nil {
				return nil, nil, err
			}

			if seen[in.Name] {
				warnings = append(warnings,
					fmt.Sprintf("duplicate player %q in %s rankings", in.Name, pos))
			}
			seen[in.Name] = true

			rank := int32(i + 1)
			var change int32
			if pr, found := prior[in.Name]; found && pr.pos == pos {
				change = pr.rank - rank
			}

			records = append(records, model.PlayerRecord{
				Name:           in.Name,
				Position:       pos,
				Rank:           rank,
				Team:           in.Team,
				ByeWeek:        in.ByeWeek,
				Bold:           in.Bold,
				Italic:         in.Italic,
				SmallTierBreak: in.SmallTierBreak,
				BigTierBreak:   in.BigTierBreak,
				News:           in.News,
				Change:         change,
			})
		}
	}

	return records, warnings, nil
}

func validatePlayerInput(in *model.PlayerInput) error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.Team == nil {
		missing = append(missing, "nfl_team")
	}

	if len(missing) > 0 {
		return &InvalidPlayerError{Name: in.Name, Fields: missing}
	}
	return nil
}
