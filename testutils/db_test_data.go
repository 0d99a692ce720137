package testutils

import (
	"context"
	"log"

	"github.com/Alt0Pal0/Gretch-2025-Rankings/containers"
	"github.com/Alt0Pal0/Gretch-2025-Rankings/db"
	"github.com/Alt0Pal0/Gretch-2025-Rankings/model"
	"github.com/itbasis/go-clock"
)

var (
	JoshAllen = model.PlayerInput{
		Name:    "Josh Allen",
		Team:    model.TEAM_BUF,
		ByeWeek: 12,
	}
	LamarJackson = model.PlayerInput{
		Name:    "Lamar Jackson",
		Team:    model.TEAM_BAL,
		ByeWeek: 14,
	}
	JalenHurts = model.PlayerInput{
		Name:    "Jalen Hurts",
		Team:    model.TEAM_PHI,
		ByeWeek: 5,
	}
	BijanRobinson = model.PlayerInput{
		Name:    "Bijan Robinson",
		Team:    model.TEAM_ATL,
		ByeWeek: 12,
	}
	SaquonBarkley = model.PlayerInput{
		Name:    "Saquon Barkley",
		Team:    model.TEAM_PHI,
		ByeWeek: 5,
	}
	JaMarrChase = model.PlayerInput{
		Name:    "Ja'Marr Chase",
		Team:    model.TEAM_CIN,
		ByeWeek: 12,
	}
	JustinJefferson = model.PlayerInput{
		Name:    "Justin Jefferson",
		Team:    model.TEAM_MIN,
		ByeWeek: 6,
	}
	BrockBowers = model.PlayerInput{
		Name:    "Brock Bowers",
		Team:    model.TEAM_LV,
		ByeWeek: 10,
	}
)

// DefaultPlayerSet is a small but complete ranking set covering all four
// positions, used to seed test versions.
func DefaultPlayerSet() model.PlayerSet {
	return model.PlayerSet{
		QB: []model.PlayerInput{JoshAllen, LamarJackson, JalenHurts},
		RB: []model.PlayerInput{BijanRobinson, SaquonBarkley},
		WR: []model.PlayerInput{JaMarrChase, JustinJefferson},
		TE: []model.PlayerInput{BrockBowers},
	}
}

type TestDB struct {
	container *containers.DBContainer
	DB        db.Store
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}
