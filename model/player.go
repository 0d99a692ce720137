package model

import (
	"strings"
	"time"
)

// PlayerRecord is one ranked player inside one version. Records are
// append-only: a re-rank writes new records under a new version and never
// touches the old rows.
type PlayerRecord struct {
	ID        int32
	VersionID int32
	Name      string
	Position  Position
	// Rank is the 1-based rank within the position. For every position in a
	// version the ranks are exactly 1..N with no gaps or duplicates.
	Rank    int32
	Team    *NFLTeam
	ByeWeek int // 0 when not set
	Bold    bool
	Italic  bool
	// Tier breaks mark a perceived quality gap after this player.
	SmallTierBreak bool
	BigTierBreak   bool
	News           string
	// Change is the signed rank delta vs the immediately prior version:
	// prior rank minus new rank, so positive means the player moved up.
	// New players and players that switched positions get 0.
	Change  int32
	Created time.Time
}

// PlayerInput is one player as supplied to a publish. Position and rank are
// implied by which PlayerSet list the player appears in and at what index.
type PlayerInput struct {
	Name           string
	Team           *NFLTeam
	ByeWeek        int
	Bold           bool
	Italic         bool
	SmallTierBreak bool
	BigTierBreak   bool
	News           string
}

// PlayerSet is a complete proposed ranking set, one ordered list per
// position. The fixed fields make an unknown position group impossible to
// express; any list may be empty.
type PlayerSet struct {
	QB []PlayerInput
	RB []PlayerInput
	WR []PlayerInput
	TE []PlayerInput
}

func (s *PlayerSet) ForPosition(pos Position) []PlayerInput {
	switch pos {
	case POS_QB:
		return s.QB
	case POS_RB:
		return s.RB
	case POS_WR:
		return s.WR
	case POS_TE:
		return s.TE
	default:
		return nil
	}
}

func (s *PlayerSet) Size() int {
	return len(s.QB) + len(s.RB) + len(s.WR) + len(s.TE)
}

// RankedSet holds published or previewed player records grouped by position,
// each list ordered by rank.
type RankedSet struct {
	QB []PlayerRecord
	RB []PlayerRecord
	WR []PlayerRecord
	TE []PlayerRecord
}

func (s *RankedSet) Add(rec PlayerRecord) {
	switch rec.Position {
	case POS_QB:
		s.QB = append(s.QB, rec)
	case POS_RB:
		s.RB = append(s.RB, rec)
	case POS_WR:
		s.WR = append(s.WR, rec)
	case POS_TE:
		s.TE = append(s.TE, rec)
	}
}

func (s *RankedSet) ForPosition(pos Position) []PlayerRecord {
	switch pos {
	case POS_QB:
		return s.QB
	case POS_RB:
		return s.RB
	case POS_WR:
		return s.WR
	case POS_TE:
		return s.TE
	default:
		return nil
	}
}

func (s *RankedSet) Size() int {
	return len(s.QB) + len(s.RB) + len(s.WR) + len(s.TE)
}

// RankingBoard is the read projection: the current version plus its players
// grouped by position.
type RankingBoard struct {
	Version Version
	Players RankedSet
}

// TrimNameSuffix takes a full name, like "Deebo Samuel Sr.", and returns
// "Deebo Samuel". Ranking exports are inconsistent about suffixes and the
// name is the only cross-version player identity we have.
func TrimNameSuffix(fullName string) string {
	suffixList := []string{
		"Jr.",
		"Sr.",
		"III",
		"II",
		"IV",
	}

	for _, s := range suffixList {
		fullName = strings.TrimSuffix(fullName, s)
	}

	return strings.TrimSpace(fullName)
}
