package db

import (
	"context"

	"github.com/Alt0Pal0/Gretch-2025-Rankings/model"
)

type Store interface {
	// Returns the single version flagged current, or ErrNoCurrentVersion.
	GetCurrentVersion(ctx context.Context) (*model.Version, error)
	GetVersion(ctx context.Context, id int32) (*model.Version, error)
	// Lists the 20 most recent versions, newest first. Only version metadata
	// is returned; the player records come from GetVersionPlayers().
	ListVersions(ctx context.Context) ([]model.Version, error)
	// The highest version number ever assigned, across current and archived
	// versions alike. Returns 0 when no versions exist.
	MaxVersionNumber(ctx context.Context) (int32, error)

	// Creates a new version row flagged non-current. Returns
	// ErrVersionNumberConflict if the number is already taken, which happens
	// when two publishers race.
	CreateVersion(ctx context.Context, number int32, notes string) (*model.Version, error)
	// Clears the is_current flag from whichever version holds it.
	ArchiveCurrentVersion(ctx context.Context) error
	// Flags the given version current and un-flags every other version in
	// one statement pair inside a transaction.
	SetCurrentVersion(ctx context.Context, id int32) error
	// Maintenance only. Owned player records are removed with the version.
	DeleteVersion(ctx context.Context, id int32) error

	// Inserts the complete player set of a freshly created version. Records
	// for a published version are never updated afterwards.
	InsertPlayerRecords(ctx context.Context, versionID int32, records []model.PlayerRecord) error
	// Returns the version's players ordered by position, then rank.
	GetVersionPlayers(ctx context.Context, versionID int32) ([]model.PlayerRecord, error)

	// Recovery candidate lookup: the version with the highest version number
	// that owns at least one player record, excluding the given version.
	// Returns ErrVersionNotFound when no candidate exists.
	LatestVersionWithPlayers(ctx context.Context, excludeID int32) (*model.Version, error)
}
