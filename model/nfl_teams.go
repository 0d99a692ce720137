package model

import (
	"fmt"
	"strings"
)

type NFLTeam struct {
	code   string
	loc    string
	mascot string
	alias  []string // Other codes seen in ranking imports, e.g. ARZ for ARI
}

func (t *NFLTeam) String() string {
	return t.code
}

func (t *NFLTeam) Friendly() string {
	if t.loc == "" {
		return t.code
	}
	return fmt.Sprintf("%s %s", t.loc, t.mascot)
}

func (t *NFLTeam) Equals(o *NFLTeam) bool {
	if o == nil {
		return false
	}
	return t.code == o.code
}

var (
	// TEAM_TBD is the placeholder for players without a team assignment.
	TEAM_TBD *NFLTeam = &NFLTeam{code: "TBD", alias: []string{"FA", "FA*"}}

	// NFC
	TEAM_ARI *NFLTeam = &NFLTeam{code: "ARI", loc: "Arizona", mascot: "Cardinals", alias: []string{"ARZ"}}
	TEAM_ATL *NFLTeam = &NFLTeam{code: "ATL", loc: "Atlanta", mascot: "Falcons"}
	TEAM_CAR *NFLTeam = &NFLTeam{code: "CAR", loc: "Carolina", mascot: "Panthers"}
	TEAM_CHI *NFLTeam = &NFLTeam{code: "CHI", loc: "Chicago", mascot: "Bears"}
	TEAM_DAL *NFLTeam = &NFLTeam{code: "DAL", loc: "Dallas", mascot: "Cowboys"}
	TEAM_DET *NFLTeam = &NFLTeam{code: "DET", loc: "Detroit", mascot: "Lions"}
	TEAM_GB  *NFLTeam = &NFLTeam{code: "GB", loc: "Green Bay", mascot: "Packers", alias: []string{"GBP"}}
	TEAM_LAR *NFLTeam = &NFLTeam{code: "LAR", loc: "Los Angeles", mascot: "Rams", alias: []string{"LA"}}
	TEAM_MIN *NFLTeam = &NFLTeam{code: "MIN", loc: "Minnesota", mascot: "Vikings"}
	TEAM_NO  *NFLTeam = &NFLTeam{code: "NO", loc: "New Orleans", mascot: "Saints", alias: []string{"NOS"}}
	TEAM_NYG *NFLTeam = &NFLTeam{code: "NYG", loc: "New York", mascot: "Giants"}
	TEAM_PHI *NFLTeam = &NFLTeam{code: "PHI", loc: "Philadelphia", mascot: "Eagles"}
	TEAM_SF  *NFLTeam = &NFLTeam{code: "SF", loc: "San Francisco", mascot: "49ers", alias: []string{"SFO"}}
	TEAM_SEA *NFLTeam = &NFLTeam{code: "SEA", loc: "Seattle", mascot: "Seahawks"}
	TEAM_TB  *NFLTeam = &NFLTeam{code: "TB", loc: "Tampa Bay", mascot: "Buccaneers", alias: []string{"TBB"}}
	TEAM_WAS *NFLTeam = &NFLTeam{code: "WAS", loc: "Washington", mascot: "Commanders"}

	// AFC
	TEAM_BAL *NFLTeam = &NFLTeam{code: "BAL", loc: "Baltimore", mascot: "Ravens", alias: []string{"BLT"}}
	TEAM_BUF *NFLTeam = &NFLTeam{code: "BUF", loc: "Buffalo", mascot: "Bills"}
	TEAM_CIN *NFLTeam = &NFLTeam{code: "CIN", loc: "Cincinnati", mascot: "Bengals"}
	TEAM_CLE *NFLTeam = &NFLTeam{code: "CLE", loc: "Cleveland", mascot: "Browns", alias: []string{"CLV"}}
	TEAM_DEN *NFLTeam = &NFLTeam{code: "DEN", loc: "Denver", mascot: "Broncos"}
	TEAM_HOU *NFLTeam = &NFLTeam{code: "HOU", loc: "Houston", mascot: "Texans", alias: []string{"HST"}}
	TEAM_IND *NFLTeam = &NFLTeam{code: "IND", loc: "Indianapolis", mascot: "Colts"}
	TEAM_JAX *NFLTeam = &NFLTeam{code: "JAX", loc: "Jacksonville", mascot: "Jaguars", alias: []string{"JAC"}}
	TEAM_KC  *NFLTeam = &NFLTeam{code: "KC", loc: "Kansas City", mascot: "Chiefs", alias: []string{"KCC"}}
	TEAM_LV  *NFLTeam = &NFLTeam{code: "LV", loc: "Las Vegas", mascot: "Raiders", alias: []string{"OAK", "LVR"}}
	TEAM_LAC *NFLTeam = &NFLTeam{code: "LAC", loc: "Los Angeles", mascot: "Chargers"}
	TEAM_MIA *NFLTeam = &NFLTeam{code: "MIA", loc: "Miami", mascot: "Dolphins"}
	TEAM_NE  *NFLTeam = &NFLTeam{code: "NE", loc: "New England", mascot: "Patriots", alias: []string{"NEP"}}
	TEAM_NYJ *NFLTeam = &NFLTeam{code: "NYJ", loc: "New York", mascot: "Jets"}
	TEAM_PIT *NFLTeam = &NFLTeam{code: "PIT", loc: "Pittsburgh", mascot: "Steelers"}
	TEAM_TEN *NFLTeam = &NFLTeam{code: "TEN", loc: "Tennessee", mascot: "Titans"}

	teamMap map[string]*NFLTeam = buildTeamMap()
)

// ParseTeam maps a team code, location, or mascot to its team. Anything
// unrecognized maps to TEAM_TBD, the unassigned placeholder.
func ParseTeam(name string) *NFLTeam {
	t := teamMap[strings.ToLower(strings.TrimSpace(name))]
	if t == nil {
		return TEAM_TBD
	}
	return t
}

func buildTeamMap() map[string]*NFLTeam {
	teams := []*NFLTeam{
		// NFC
		TEAM_ARI, TEAM_ATL, TEAM_CAR, TEAM_CHI, TEAM_DAL, TEAM_DET, TEAM_GB, TEAM_LAR,
		TEAM_MIN, TEAM_NO, TEAM_NYG, TEAM_PHI, TEAM_SF, TEAM_SEA, TEAM_TB, TEAM_WAS,
		// AFC
		TEAM_BAL, TEAM_BUF, TEAM_CIN, TEAM_CLE, TEAM_DEN, TEAM_HOU, TEAM_IND, TEAM_JAX,
		TEAM_KC, TEAM_LV, TEAM_LAC, TEAM_MIA, TEAM_NE, TEAM_NYJ, TEAM_PIT, TEAM_TEN,
		// Other
		TEAM_TBD,
	}

	teamMap := make(map[string]*NFLTeam)
	for _, t := range teams {
		teamMap[strings.ToLower(t.code)] = t

		if t.loc != "" {
			teamMap[strings.ToLower(t.loc)] = t
		}

		if t.mascot != "" {
			teamMap[strings.ToLower(t.mascot)] = t
		}

		for _, a := range t.alias {
			teamMap[strings.ToLower(a)] = t
		}
	}
	return teamMap
}
