package controller

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/Alt0Pal0/Gretch-2025-Rankings/model"
)

// ImportRankingsCSV parses a full rankings export and publishes it as a new
// version. The file must cover every player the new version should have; the
// row order within each position (after sorting by the RK column) becomes
// the published ranking order.
func (c *controller) ImportRankingsCSV(ctx context.Context, r io.Reader, notes string) (*model.PublishResult, error) {
	set, err := readRankingsCSV(r)
	if err != nil {
		return nil, err
	}

	return c.PublishVersion(ctx, *set, notes)
}

var errUnusedPosition = errors.New("unused position")

type rankingsCSVReader struct {
	csvReader *csv.Reader
	rankIdx   int
	nameIdx   int
	teamIdx   int
	posIdx    int
	byeIdx    int
}

type csvLine struct {
	rank int32
	name string
	team *model.NFLTeam
	pos  model.Position
	bye  int
}

func (l *csvLine) String() string {
	return fmt.Sprintf("%d - %s %s %s", l.rank, l.name, l.team.String(), l.pos)
}

func newRankingsCSVReader(r io.Reader) (*rankingsCSVReader, error) {
	cr := &rankingsCSVReader{
		csvReader: csv.NewReader(r),
		rankIdx:   -1,
		nameIdx:   -1,
		teamIdx:   -1,
		posIdx:    -1,
		byeIdx:    -1,
	}

	header, err := cr.csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading rankings CSV file header: %v", err)
	}

	for i, p := range header {
		if p == "RK" {
			cr.rankIdx = i
		} else if p == "PLAYER NAME" {
			cr.nameIdx = i
		} else if p == "TEAM" {
			cr.teamIdx = i
		} else if p == "POS" {
			cr.posIdx = i
		} else if p == "BYE" {
			cr.byeIdx = i
		}
	}

	// BYE is optional, everything else is required.
	if cr.rankIdx == -1 || cr.nameIdx == -1 || cr.teamIdx == -1 || cr.posIdx == -1 {
		return nil, fmt.Errorf("error finding required columns; rank: %d, name: %d, team: %d, pos: %d",
			cr.rankIdx, cr.nameIdx, cr.teamIdx, cr.posIdx)
	}

	return cr, nil
}

func (cr *rankingsCSVReader) readLine() (*csvLine, error) {
	record, err := cr.csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("error reading line in rankings file (%v): %w", record, err)
	}

	line := csvLine{}

	rank, err := strconv.Atoi(record[cr.rankIdx])
	if err != nil {
		return nil, fmt.Errorf("error parsing ranking (%v): %w", record, err)
	}
	line.rank = int32(rank)

	line.name = model.TrimNameSuffix(record[cr.nameIdx])

	t := record[cr.teamIdx]
	line.team = model.ParseTeam(t)
	if line.team.Equals(model.TEAM_TBD) && !isUnassigned(t) {
		return nil, fmt.Errorf("bad team name for %s", line.name)
	}

	// Exports write the positional rank into the POS column, e.g. "QB12".
	line.pos = model.ParsePosition(strings.TrimRight(record[cr.posIdx], "0123456789"))
	if line.pos == model.POS_UNKNOWN {
		return nil, errUnusedPosition
	}

	if cr.byeIdx != -1 && record[cr.byeIdx] != "" {
		bye, err := strconv.Atoi(record[cr.byeIdx])
		if err != nil || bye < 1 || bye > 18 {
			return nil, fmt.Errorf("bad bye week %q for %s", record[cr.byeIdx], line.name)
		}
		line.bye = bye
	}

	return &line, nil
}

func isUnassigned(t string) bool {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case "TBD", "FA", "FA*":
		return true
	}
	return false
}

func readRankingsCSV(r io.Reader) (*model.PlayerSet, error) {
	reader, err := newRankingsCSVReader(r)
	if err != nil {
		return nil, err
	}

	byPosition := make(map[model.Position][]csvLine)
	for {
		line, err := reader.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			// Kickers, defenses, etc. are not ranked here.
			if errors.Is(err, errUnusedPosition) {
				continue
			}
			return nil, err
		}

		byPosition[line.pos] = append(byPosition[line.pos], *line)
	}

	set := &model.PlayerSet{}
	for _, pos := range model.RankedPositions {
		lines := byPosition[pos]
		// Sort by the file's intended rank, then let the resulting order
		// define the real sequential ranks. This absorbs files with gaps or
		// duplicate RK values.
		slices.SortStableFunc(lines, func(a, b csvLine) int {
			return int(a.rank - b.rank)
		})

		players := make([]model.PlayerInput, 0, len(lines))
		for _, l := range lines {
			players = append(players, model.PlayerInput{
				Name:    l.name,
				Team:    l.team,
				ByeWeek: l.bye,
			})
		}

		switch pos {
		case model.POS_QB:
			set.QB = players
		case model.POS_RB:
			set.RB = players
		case model.POS_WR:
			set.WR = players
		case model.POS_TE:
			set.TE = players
		}
	}

	return set, nil
}
