package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Alt0Pal0/Gretch-2025-Rankings/db"
	"github.com/Alt0Pal0/Gretch-2025-Rankings/model"
	"github.com/itbasis/go-clock"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// Publishes a complete replacement ranking set as a new version. The new
	// version becomes current and every player gets a rank delta against the
	// version it replaced. Returns db.ErrVersionNumberConflict when another
	// publisher raced this one; the caller should re-read state and retry.
	PublishVersion(ctx context.Context, set model.PlayerSet, notes string) (*model.PublishResult, error)

	// Reads the current version and its players grouped by position,
	// ordered by rank. Returns db.ErrNoCurrentVersion when nothing has been
	// published, which callers should surface as an empty board.
	GetCurrentRankings(ctx context.Context) (*model.RankingBoard, error)

	// Computes the rank deltas a proposed set would get against the named
	// prior version without writing anything. Used for publish previews.
	GetRankingDelta(ctx context.Context, priorVersionID int32, set model.PlayerSet) (*model.RankedSet, error)

	// Parses a rankings CSV file and publishes it as a new version.
	ImportRankingsCSV(ctx context.Context, r io.Reader, notes string) (*model.PublishResult, error)

	ListVersions(ctx context.Context) ([]model.Version, error)
	GetVersion(ctx context.Context, id int32) (*model.RankingBoard, error)
	// Maintenance only. Refuses to delete the current version.
	DeleteVersion(ctx context.Context, id int32) error
}

type controller struct {
	clock clock.Clock
	db    db.Store
}

func New(clock clock.Clock, db db.Store) (C, error) {
	c := &controller{
		clock: clock,
		db:    db,
	}
	return c, nil
}

// InvalidPlayerError reports a proposed player that is missing required
// fields. The publish is rejected before any version state changes.
type InvalidPlayerError struct {
	Name   string
	Fields []string
}

func (e *InvalidPlayerError) Error() string {
	name := e.Name
	if name == "" {
		name = "unknown player"
	}
	return fmt.Sprintf("invalid player data for %s: missing %s", name, strings.Join(e.Fields, ", "))
}
