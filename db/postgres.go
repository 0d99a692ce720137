package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Alt0Pal0/Gretch-2025-Rankings/model"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNoCurrentVersion means no version is flagged current. After a failed
	// publish that recovery could not repair this is an operator-visible
	// state that needs manual attention.
	ErrNoCurrentVersion error = errors.New("no current version")
	ErrVersionNotFound  error = errors.New("version not found")
	// ErrVersionNumberConflict means another publisher claimed the same
	// version number first. The caller should re-read state and retry.
	ErrVersionNumberConflict error = errors.New("version number already exists")
)

const uniqueViolationCode = "23505"

func New(ctx context.Context, connString string, clock clock.Clock) (Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) GetCurrentVersion(ctx context.Context) (*model.Version, error) {
	const query = `SELECT id, version_number, version_date, is_current, notes, created_at
					FROM ranking_versions WHERE is_current=TRUE LIMIT 1`

	row := db.pool.QueryRow(ctx, query)
	v, err := scanVersion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoCurrentVersion
		}
		return nil, fmt.Errorf("error loading current version: %w", err)
	}
	return v, nil
}

func (db *postgresDB) GetVersion(ctx context.Context, id int32) (*model.Version, error) {
	const query = `SELECT id, version_number, version_date, is_current, notes, created_at
					FROM ranking_versions WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	v, err := scanVersion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("error loading version %d: %w", id, err)
	}
	return v, nil
}

func (db *postgresDB) ListVersions(ctx context.Context) ([]model.Version, error) {
	const query = `SELECT id, version_number, version_date, is_current, notes, created_at
					FROM ranking_versions ORDER BY version_number DESC LIMIT 20`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing versions: %w", err)
	}

	results := make([]model.Version, 0, 20)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning version: %w", err)
		}
		results = append(results, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with version rows: %w", err)
	}

	return results, nil
}

func (db *postgresDB) MaxVersionNumber(ctx context.Context) (int32, error) {
	const query = `SELECT COALESCE(MAX(version_number), 0) FROM ranking_versions`

	var max int32
	if err := db.pool.QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, fmt.Errorf("error reading max version number: %w", err)
	}
	return max, nil
}

func (db *postgresDB) CreateVersion(ctx context.Context, number int32, notes string) (*model.Version, error) {
	const query = `INSERT INTO ranking_versions (version_number, version_date, is_current, notes)
					VALUES (@number, @date, FALSE, @notes)
					RETURNING id, version_number, version_date, is_current, notes, created_at`

	date := db.clock.Now().UTC()
	args := pgx.NamedArgs{
		"number": number,
		"date": pgtype.Timestamptz{
			Time:             date,
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
		"notes": sql.NullString{
			String: notes,
			Valid:  notes != "",
		},
	}

	row := db.pool.QueryRow(ctx, query, args)
	v, err := scanVersion(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrVersionNumberConflict
		}
		return nil, fmt.Errorf("error creating version %d: %w", number, err)
	}
	return v, nil
}

func (db *postgresDB) ArchiveCurrentVersion(ctx context.Context) error {
	const query = `UPDATE ranking_versions SET is_current=FALSE WHERE is_current=TRUE`

	if _, err := db.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("error archiving current version: %w", err)
	}
	return nil
}

func (db *postgresDB) SetCurrentVersion(ctx context.Context, id int32) error {
	const clear = `UPDATE ranking_versions SET is_current=FALSE WHERE id != @id`
	const set = `UPDATE ranking_versions SET is_current=TRUE WHERE id=@id`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{"id": id}
	if _, err := tx.Exec(ctx, clear, args); err != nil {
		return fmt.Errorf("error clearing current flags: %w", err)
	}

	tag, err := tx.Exec(ctx, set, args)
	if err != nil {
		return fmt.Errorf("error setting current version %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting current version swap: %w", err)
	}
	return nil
}

func (db *postgresDB) DeleteVersion(ctx context.Context, id int32) error {
	const query = `DELETE FROM ranking_versions WHERE id=@id`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting version %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionNotFound
	}
	return nil
}

func (db *postgresDB) InsertPlayerRecords(ctx context.Context, versionID int32, records []model.PlayerRecord) error {
	const insert = `INSERT INTO players (
			version_id, name, position, position_rank, nfl_team, bye_week,
			is_bold, is_italic, small_tier_break, big_tier_break,
			news_copy, ranking_change
		) VALUES (
			@versionID, @name, @position, @rank, @team, @byeWeek,
			@bold, @italic, @smallTierBreak, @bigTierBreak,
			@news, @change
		)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		args := namedArgsForPlayerRecord(versionID, &rec)
		if _, err := tx.Exec(ctx, insert, args); err != nil {
			return fmt.Errorf("error inserting player %s for version %d: %w", rec.Name, versionID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting player records: %w", err)
	}
	return nil
}

func (db *postgresDB) GetVersionPlayers(ctx context.Context, versionID int32) ([]model.PlayerRecord, error) {
	const query = `SELECT id, version_id, name, position, position_rank, nfl_team, bye_week,
						is_bold, is_italic, small_tier_break, big_tier_break,
						news_copy, ranking_change, created_at
					FROM players WHERE version_id=@versionID
					ORDER BY position, position_rank`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"versionID": versionID})
	if err != nil {
		return nil, fmt.Errorf("error querying players for version %d: %w", versionID, err)
	}

	results := make([]model.PlayerRecord, 0, 64)
	for rows.Next() {
		rec, err := scanPlayerRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with player rows: %w", err)
	}

	return results, nil
}

func (db *postgresDB) LatestVersionWithPlayers(ctx context.Context, excludeID int32) (*model.Version, error) {
	const query = `SELECT v.id, v.version_number, v.version_date, v.is_current, v.notes, v.created_at
					FROM ranking_versions AS v
					WHERE v.id != @excludeID
						AND EXISTS (SELECT 1 FROM players AS p WHERE p.version_id = v.id)
					ORDER BY v.version_number DESC
					LIMIT 1`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"excludeID": excludeID})
	v, err := scanVersion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("error finding recovery candidate: %w", err)
	}
	return v, nil
}

func scanVersion(row pgx.Row) (*model.Version, error) {
	var result model.Version
	var notes sql.NullString
	var date, created pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.Number,
		&date,
		&result.IsCurrent,
		&notes,
		&created)

	if err != nil {
		return nil, err
	}

	result.Date = date.Time
	result.Notes = valueOrEmpty(notes)
	result.Created = created.Time

	return &result, nil
}

func scanPlayerRecord(row pgx.Row) (*model.PlayerRecord, error) {
	var result model.PlayerRecord
	var pos DBPosition
	var team DBNFLTeam
	var byeWeek sql.NullInt32
	var news sql.NullString
	var created pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.VersionID,
		&result.Name,
		&pos,
		&result.Rank,
		&team,
		&byeWeek,
		&result.Bold,
		&result.Italic,
		&result.SmallTierBreak,
		&result.BigTierBreak,
		&news,
		&result.Change,
		&created)

	if err != nil {
		return nil, err
	}

	result.Position = pos.position
	result.Team = team.team
	if byeWeek.Valid {
		result.ByeWeek = int(byeWeek.Int32)
	}
	result.News = valueOrEmpty(news)
	result.Created = created.Time

	return &result, nil
}

func namedArgsForPlayerRecord(versionID int32, rec *model.PlayerRecord) pgx.NamedArgs {
	return pgx.NamedArgs{
		"versionID": versionID,
		"name":      rec.Name,
		"position":  &DBPosition{position: rec.Position},
		"rank":      rec.Rank,
		"team":      &DBNFLTeam{team: rec.Team},
		"byeWeek": sql.NullInt32{
			Int32: int32(rec.ByeWeek),
			Valid: rec.ByeWeek != 0,
		},
		"bold":           rec.Bold,
		"italic":         rec.Italic,
		"smallTierBreak": rec.SmallTierBreak,
		"bigTierBreak":   rec.BigTierBreak,
		"news": sql.NullString{
			String: rec.News,
			Valid:  rec.News != "",
		},
		"change": rec.Change,
	}
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

type DBPosition struct {
	position model.Position
}

func (p *DBPosition) ScanText(v pgtype.Text) error {
	p.position = model.ParsePosition(v.String)
	return nil
}

func (p *DBPosition) TextValue() (pgtype.Text, error) {
	return pgtype.Text{
		String: string(p.position),
		Valid:  true,
	}, nil
}

type DBNFLTeam struct {
	team *model.NFLTeam
}

func (t *DBNFLTeam) ScanText(v pgtype.Text) error {
	t.team = model.ParseTeam(v.String)
	return nil
}

func (t *DBNFLTeam) TextValue() (pgtype.Text, error) {
	return pgtype.Text{
		String: t.team.String(),
		Valid:  true,
	}, nil
}
