package controller

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Alt0Pal0/Gretch-2025-Rankings/model"
)

const goodRankingsFile = `RK,PLAYER NAME,TEAM,POS,BYE
1,Ja'Marr Chase,CIN,WR1,10
2,Bijan Robinson,ATL,RB1,5
3,Justin Jefferson,MIN,WR2,6
4,Josh Allen,BUF,QB1,7
5,Saquon Barkley,PHI,RB2,9
6,Brock Bowers,LV,TE1,8
7,Justin Tucker,BLT,K1,14
8,Lamar Jackson Jr.,BAL,QB2,7
9,49ers D/ST,SF,DST1,14
10,Free Agent Back,FA,RB3,
`

func TestReadRankingsCSV(t *testing.T) {
	set, err := readRankingsCSV(strings.NewReader(goodRankingsFile))
	if err != nil {
		t.Fatalf("error reading rankings file: %v", err)
	}

	expected := &model.PlayerSet{
		QB: []model.PlayerInput{
			{Name: "Josh Allen", Team: model.TEAM_BUF, ByeWeek: 7},
			{Name: "Lamar Jackson", Team: model.TEAM_BAL, ByeWeek: 7},
		},
		RB: []model.PlayerInput{
			{Name: "Bijan Robinson", Team: model.TEAM_ATL, ByeWeek: 5},
			{Name: "Saquon Barkley", Team: model.TEAM_PHI, ByeWeek: 9},
			{Name: "Free Agent Back", Team: model.TEAM_TBD},
		},
		WR: []model.PlayerInput{
			{Name: "Ja'Marr Chase", Team: model.TEAM_CIN, ByeWeek: 10},
			{Name: "Justin Jefferson", Team: model.TEAM_MIN, ByeWeek: 6},
		},
		TE: []model.PlayerInput{
			{Name: "Brock Bowers", Team: model.TEAM_LV, ByeWeek: 8},
		},
	}

	if !reflect.DeepEqual(set, expected) {
		t.Errorf("parsed set did not match.\ngot:      %+v\nexpected: %+v", set, expected)
	}
}

// Column order in exports moves around, only the header names are stable.
func TestReadRankingsCSV_columnOrder(t *testing.T) {
	file := `POS,TEAM,PLAYER NAME,RK
QB1,BUF,Josh Allen,1
`
	set, err := readRankingsCSV(strings.NewReader(file))
	if err != nil {
		t.Fatalf("error reading rankings file: %v", err)
	}
	if len(set.QB) != 1 || set.QB[0].Name != "Josh Allen" || !set.QB[0].Team.Equals(model.TEAM_BUF) {
		t.Errorf("unexpected QB list: %+v", set.QB)
	}
	if set.QB[0].ByeWeek != 0 {
		t.Errorf("expected no bye week without a BYE column, got %d", set.QB[0].ByeWeek)
	}
}

// Rank values in the file only define order within a position, the real ranks
// are assigned sequentially at publish time. Gaps and shuffled rows are fine.
func TestReadRankingsCSV_ranksDefineOrderOnly(t *testing.T) {
	file := `RK,PLAYER NAME,TEAM,POS
40,Lamar Jackson,BAL,QB3
2,Josh Allen,BUF,QB1
17,Jalen Hurts,PHI,QB2
`
	set, err := readRankingsCSV(strings.NewReader(file))
	if err != nil {
		t.Fatalf("error reading rankings file: %v", err)
	}

	names := make([]string, 0, len(set.QB))
	for _, p := range set.QB {
		names = append(names, p.Name)
	}
	expected := []string{"Josh Allen", "Jalen Hurts", "Lamar Jackson"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("unexpected QB order: %v", names)
	}
}

func TestReadRankingsCSV_errors(t *testing.T) {
	tests := map[string]struct {
		file        string
		errContains string
	}{
		"missing required column": {
			file:        "RK,PLAYER NAME,POS\n1,Josh Allen,QB1\n",
			errContains: "required columns",
		},
		"bad team name": {
			file:        "RK,PLAYER NAME,TEAM,POS\n1,Josh Allen,BUFF,QB1\n",
			errContains: "bad team name for Josh Allen",
		},
		"bad rank": {
			file:        "RK,PLAYER NAME,TEAM,POS\nfirst,Josh Allen,BUF,QB1\n",
			errContains: "error parsing ranking",
		},
		"bye week out of range": {
			file:        "RK,PLAYER NAME,TEAM,POS,BYE\n1,Josh Allen,BUF,QB1,23\n",
			errContains: "bad bye week",
		},
		"bye week not a number": {
			file:        "RK,PLAYER NAME,TEAM,POS,BYE\n1,Josh Allen,BUF,QB1,soon\n",
			errContains: "bad bye week",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := readRankingsCSV(strings.NewReader(tc.file))
			if err == nil {
				t.Fatal("expected an error reading the rankings file")
			}
			if !strings.Contains(err.Error(), tc.errContains) {
				t.Errorf("expected error containing %q, got: %v", tc.errContains, err)
			}
		})
	}
}
